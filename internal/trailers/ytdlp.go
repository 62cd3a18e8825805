package trailers

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DownloadArgs builds the yt-dlp argument list for a trailer download.
// Subtitle languages ride along via --sub-langs; cookies come from a
// browser profile, a cookies file, or both.
func DownloadArgs(url, outputPath, cookiesBrowser, cookiesFile string, subtitleLanguages []string) []string {
	var args []string
	if cookiesBrowser != "" {
		args = append(args, "--cookies-from-browser", cookiesBrowser)
	}
	args = append(args, "-f", "mp4")
	if cookiesFile != "" {
		args = append(args, "--cookies", cookiesFile)
	}
	args = append(args, "-o", outputPath, url)
	if len(subtitleLanguages) > 0 {
		args = append(args, "--sub-langs", strings.Join(subtitleLanguages, ","))
	}
	return args
}

// Download runs yt-dlp for one trailer. Failures carry yt-dlp's output so
// the caller can log why a single download went wrong.
func Download(ctx context.Context, binary string, args []string) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			return fmt.Errorf("yt-dlp: %w: %s", err, detail)
		}
		return fmt.Errorf("yt-dlp: %w", err)
	}
	return nil
}
