package preflight

import (
	"context"

	"tracksmith/internal/config"
	"tracksmith/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable environment checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Library directory", cfg.Paths.LibraryDir))

	if cfg.Paths.TempDir != "" {
		results = append(results, CheckDirectoryAccess("Temp directory", cfg.Paths.TempDir))
		results = append(results, CheckFreeSpace("Temp free space", cfg.Paths.TempDir))
	}
	results = append(results, CheckFreeSpace("Library free space", cfg.Paths.LibraryDir))

	if cfg.TMDB.APIKey != "" {
		results = append(results, CheckTMDB(ctx, cfg.TMDB.BaseURL, cfg.TMDB.APIKey))
	}

	return results
}

// CheckSystemDeps evaluates the external binaries tracksmith shells out to.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Required for audio conversion and subtitle extraction",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Required for media inspection",
		},
		{
			Name:        "yt-dlp",
			Command:     cfg.YtdlpBinary(),
			Description: "Required only for trailer downloads",
			Optional:    true,
		},
	}
	return deps.CheckBinaries(requirements)
}
