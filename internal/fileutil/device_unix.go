//go:build unix

package fileutil

import (
	"os"
	"syscall"
)

func deviceID(info os.FileInfo) uint64 {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint64(stat.Dev)
	}
	return 0
}
