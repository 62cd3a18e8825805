package trailers

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"tracksmith/internal/config"
	"tracksmith/internal/fileutil"
	"tracksmith/internal/logging"
	"tracksmith/internal/trailers/tmdb"
)

// Service downloads trailers for every movie file in a library directory.
type Service struct {
	cfg    *config.Config
	logger *slog.Logger
	finder tmdb.Finder
}

// NewService wires the trailer downloader. A TMDB API key is required
// here, unlike the rest of the tool.
func NewService(cfg *config.Config, logger *slog.Logger) (*Service, error) {
	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
	if err != nil {
		return nil, err
	}
	return &Service{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "trailers"),
		finder: client,
	}, nil
}

// NewServiceWithFinder injects a Finder, for tests.
func NewServiceWithFinder(cfg *config.Config, logger *slog.Logger, finder tmdb.Finder) *Service {
	return &Service{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "trailers"),
		finder: finder,
	}
}

// Summary aggregates one trailer run.
type Summary struct {
	Scanned    int
	Downloaded int
	NotFound   int
	Failed     int
}

// Run walks root for movie files, resolves each to a YouTube trailer via
// TMDB, and downloads it with yt-dlp. Trailers land in outputDir, which
// defaults to a Trailers directory under root. Per-file failures never
// abort the run; dryRun reports what would download without touching
// the network beyond TMDB.
func (s *Service) Run(ctx context.Context, root, outputDir string, dryRun bool) (Summary, error) {
	if outputDir == "" {
		outputDir = s.cfg.Paths.TrailerDir
	}
	if outputDir == "" {
		outputDir = filepath.Join(root, "Trailers")
	}
	if !dryRun {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return Summary{}, fmt.Errorf("create trailer directory: %w", err)
		}
	}

	files, err := findMovieFiles(root, s.cfg.Trailers.Patterns)
	if err != nil {
		return Summary{}, fmt.Errorf("scan %s: %w", root, err)
	}
	s.logger.Info("starting trailer run",
		logging.String("directory", root),
		logging.String("output_dir", outputDir),
		logging.Int("files", len(files)),
		logging.Bool("dry_run", dryRun),
	)

	summary := Summary{Scanned: len(files)}
	for _, file := range files {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		title := MovieTitle(file)
		fileLogger := s.logger.With(logging.String("title", title))

		url, err := tmdb.TrailerURL(ctx, s.finder, title)
		if err != nil {
			fileLogger.Warn("trailer lookup failed", logging.Error(err))
			summary.Failed++
			continue
		}
		if url == "" {
			fileLogger.Info("no trailer found")
			summary.NotFound++
			continue
		}

		output := filepath.Join(outputDir, fileutil.SanitizeFilename(title)+".mp4")
		if dryRun {
			fileLogger.Info("would download trailer",
				logging.String("url", url),
				logging.String("output", output),
			)
			continue
		}

		args := DownloadArgs(url, output, s.cfg.Trailers.CookiesBrowser, s.cfg.Trailers.CookiesFile, s.cfg.Trailers.SubtitleLanguages)
		if err := Download(ctx, s.cfg.YtdlpBinary(), args); err != nil {
			fileLogger.Warn("trailer download failed", logging.Error(err))
			summary.Failed++
			continue
		}
		fileLogger.Info("trailer downloaded", logging.String("output", output))
		summary.Downloaded++
	}

	s.logger.Info("trailer run finished",
		logging.Int("downloaded", summary.Downloaded),
		logging.Int("not_found", summary.NotFound),
		logging.Int("failed", summary.Failed),
	)
	return summary, nil
}

// findMovieFiles walks root collecting files whose base name matches any
// of the glob patterns. Order follows the walk, deduplicated.
func findMovieFiles(root string, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil || entry.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		for _, pattern := range patterns {
			ok, err := filepath.Match(pattern, base)
			if err != nil {
				return fmt.Errorf("bad pattern %q: %w", pattern, err)
			}
			if ok {
				if _, dup := seen[path]; !dup {
					seen[path] = struct{}{}
					files = append(files, path)
				}
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
