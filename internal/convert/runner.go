package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var outTimePattern = regexp.MustCompile(`out_time_us=(\d+)`)

const pollInterval = 500 * time.Millisecond

// RunFFmpeg executes ffmpeg with args (the final element must be the
// output path), feeding progress observations to reporter every poll
// tick. Progress comes from the growing output file measured against
// predicted bytes; ffmpeg's -progress sidecar supplies out_time_us for
// the encode speed figure. A nonzero exit, a missing output, or a
// zero-byte output all fail the run.
func RunFFmpeg(ctx context.Context, binary string, args []string, predicted int64, reporter Reporter) error {
	if len(args) == 0 {
		return fmt.Errorf("empty ffmpeg argument list")
	}
	output := args[len(args)-1]

	progressFile, err := os.CreateTemp("", "tracksmith-progress-*.txt")
	if err != nil {
		return fmt.Errorf("create progress file: %w", err)
	}
	progressPath := progressFile.Name()
	_ = progressFile.Close()
	defer os.Remove(progressPath)

	// Insert -progress ahead of the output path.
	full := make([]string, 0, len(args)+2)
	full = append(full, args[:len(args)-1]...)
	full = append(full, "-progress", progressPath, output)

	cmd := exec.CommandContext(ctx, binary, full...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	track := newTracker(predicted, time.Now())
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var waitErr error
poll:
	for {
		select {
		case waitErr = <-done:
			break poll
		case now := <-ticker.C:
			size := outputSize(output)
			if size < 0 {
				continue
			}
			snap := track.observe(size, readOutTimeUs(progressPath), now)
			if reporter != nil {
				reporter.Update(snap)
			}
		}
	}

	success := waitErr == nil
	if reporter != nil {
		reporter.Done(success)
	}
	if waitErr != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return fmt.Errorf("ffmpeg failed: %w: %s", waitErr, detail)
		}
		return fmt.Errorf("ffmpeg failed: %w", waitErr)
	}

	stat, err := os.Stat(output)
	if err != nil {
		return fmt.Errorf("output file was not created: %s", output)
	}
	if stat.Size() == 0 {
		return fmt.Errorf("output file is empty: %s", output)
	}
	return nil
}

func outputSize(path string) int64 {
	stat, err := os.Stat(path)
	if err != nil {
		return -1
	}
	return stat.Size()
}

// readOutTimeUs returns the most recent out_time_us value ffmpeg wrote
// to its progress sidecar, or 0 when none is readable yet.
func readOutTimeUs(path string) int64 {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	matches := outTimePattern.FindAllSubmatch(data, -1)
	if len(matches) == 0 {
		return 0
	}
	value, err := strconv.ParseInt(string(matches[len(matches)-1][1]), 10, 64)
	if err != nil {
		return 0
	}
	return value
}
