// Package deps checks availability of the external tools tracksmith
// orchestrates.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency tracksmith relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Version     string
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
// Version detection is best-effort; a binary that exists but fails the
// version probe is still reported available.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Command = resolved
		status.Version = probeVersion(resolved)
		results = append(results, status)
	}
	return results
}

// probeVersion asks the binary for its version and keeps the first line.
// ffmpeg, ffprobe, and yt-dlp all answer "--version" (ffmpeg prints usage
// noise for unknown flags but still exits zero with "-version", which it
// also accepts; try both spellings).
func probeVersion(path string) string {
	for _, flag := range []string{"--version", "-version"} {
		out, err := exec.Command(path, flag).Output()
		if err != nil {
			continue
		}
		line, _, _ := strings.Cut(string(out), "\n")
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
