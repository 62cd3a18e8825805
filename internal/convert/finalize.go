package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tracksmith/internal/fileutil"
)

const backupTimeFormat = "20060102_150405"

// BackupPath derives the timestamped backup name for original. Legacy
// `_old` suffixes from earlier runs are stripped so they cannot pile up.
func BackupPath(original string, now time.Time) string {
	dir := filepath.Dir(original)
	ext := filepath.Ext(original)
	stem := strings.TrimSuffix(filepath.Base(original), ext)
	for strings.HasSuffix(stem, "_old") {
		stem = strings.TrimSuffix(stem, "_old")
	}
	return filepath.Join(dir, fmt.Sprintf("%s_backup_%s%s", stem, now.Format(backupTimeFormat), ext))
}

// Finalize replaces original with the converted output. The original is
// first renamed to a timestamped backup; if moving the output into place
// then fails, the backup is restored. When output sits on another
// filesystem (temp dir on a local disk, library on NAS) the move falls
// back to a verified copy. Returns the backup path on success.
func Finalize(original, output string) (string, error) {
	backup := BackupPath(original, time.Now())

	if err := os.Rename(original, backup); err != nil {
		return "", fmt.Errorf("back up original: %w", err)
	}

	if err := moveIntoPlace(output, original); err != nil {
		if restoreErr := os.Rename(backup, original); restoreErr != nil {
			return "", fmt.Errorf("install converted file: %w (backup restore also failed: %v)", err, restoreErr)
		}
		return "", fmt.Errorf("install converted file: %w (original restored from backup)", err)
	}

	return backup, nil
}

func moveIntoPlace(src, dst string) error {
	if fileutil.SameDevice(src, filepath.Dir(dst)) {
		return os.Rename(src, dst)
	}
	if err := fileutil.CopyFileVerified(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}
