package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"tracksmith/internal/config"
	"tracksmith/internal/journal"
	"tracksmith/internal/language"
	"tracksmith/internal/logging"
)

// Service runs the AC3/E-AC3 conversion batch over a library directory.
type Service struct {
	cfg     *config.Config
	logger  *slog.Logger
	journal *journal.Store
	lock    *flock.Flock
	session string
	allowed language.AllowList
}

// NewService wires a conversion batch. store may be nil when journaling
// is unavailable; runs still proceed.
func NewService(cfg *config.Config, logger *slog.Logger, store *journal.Store) *Service {
	return &Service{
		cfg:     cfg,
		logger:  logging.NewComponentLogger(logger, "convert"),
		journal: store,
		lock:    flock.New(filepath.Join(cfg.Paths.LogDir, "tracksmith-convert.lock")),
		session: uuid.NewString(),
		allowed: language.NewAllowList(cfg.Convert.Languages),
	}
}

// Summary aggregates one batch run.
type Summary struct {
	Scanned   int
	Converted int
	Skipped   int
	Failed    int
}

// Run scans root for video files and processes them with the configured
// worker count. Exactly one batch may run at a time; a second invocation
// fails fast on the lock. Per-file failures are logged and journaled but
// never abort the batch.
func (s *Service) Run(ctx context.Context, root string, dryRun bool) (Summary, error) {
	locked, err := s.lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return Summary{}, errors.New("another conversion run is already active")
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	logger := s.logger.With(logging.String("session_id", s.session))

	files, err := Scan(root, s.cfg.Convert.Extensions)
	if err != nil {
		return Summary{}, fmt.Errorf("scan %s: %w", root, err)
	}
	if len(files) == 0 {
		logger.Info("no video files found", logging.String("directory", root))
		return Summary{}, nil
	}
	logger.Info("starting conversion batch",
		logging.String("directory", root),
		logging.Int("files", len(files)),
		logging.Int("workers", s.cfg.Convert.Workers),
		logging.String("languages", strings.Join(s.allowed.Values(), ",")),
		logging.Bool("dry_run", dryRun),
	)

	summary := Summary{Scanned: len(files)}
	var mu sync.Mutex
	forEachFile(ctx, s.cfg.Convert.Workers, files, func(ctx context.Context, path string) {
		outcome := s.processFile(ctx, logger, path, dryRun)
		mu.Lock()
		switch outcome {
		case journal.OutcomeConverted:
			summary.Converted++
		case journal.OutcomeFailed:
			summary.Failed++
		default:
			summary.Skipped++
		}
		mu.Unlock()
	})

	logger.Info("conversion batch finished",
		logging.Int("converted", summary.Converted),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
	)
	return summary, ctx.Err()
}

func (s *Service) processFile(ctx context.Context, logger *slog.Logger, path string, dryRun bool) journal.Outcome {
	start := time.Now()
	fileLogger := logger.With(logging.String("file", filepath.Base(path)))

	info, err := Inspect(ctx, s.cfg.FFprobeBinary(), path, fileLogger)
	if err != nil {
		fileLogger.Error("inspect failed", logging.Error(err))
		s.record(ctx, fileLogger, journal.Entry{
			Path: path, Outcome: journal.OutcomeFailed, Reason: err.Error(), Elapsed: time.Since(start),
		})
		return journal.OutcomeFailed
	}
	s.logStreams(fileLogger, info)

	plan := BuildPlan(info, s.allowed)
	if plan.Mode == ModeSkip {
		fileLogger.Info("skipping file", logging.String("reason", plan.Reason))
		s.record(ctx, fileLogger, journal.Entry{
			Path: path, Outcome: journal.OutcomeSkipped, Reason: plan.Reason,
			Codec: plan.Primary.Codec, Channels: plan.Primary.Channels,
			OriginalBytes: info.SizeBytes, Elapsed: time.Since(start),
		})
		return journal.OutcomeSkipped
	}

	fileLogger.Info("planned conversion",
		logging.String("plan", plan.Describe()),
		logging.Int("dropped_audio", plan.DroppedAudio),
		logging.Int("dropped_subtitles", plan.DroppedSubtitles),
	)
	if dryRun {
		return journal.OutcomeSkipped
	}

	output := s.outputPath(path)
	args := BuildCommand(plan, path, output, s.cfg.Convert.HWAccel, s.cfg.Convert.HWAccelType)
	predicted := PredictSize(ctx, s.cfg.FFprobeBinary(), info, plan)
	reporter := NewReporter(path, predicted, fileLogger)

	if err := RunFFmpeg(ctx, s.cfg.FFmpegBinary(), args, predicted, reporter); err != nil {
		_ = os.Remove(output)
		fileLogger.Error("conversion failed", logging.Error(err))
		s.record(ctx, fileLogger, journal.Entry{
			Path: path, Outcome: journal.OutcomeFailed, Reason: err.Error(),
			Codec: plan.Primary.Codec, BitrateKbps: plan.BitrateKbps, Channels: plan.Primary.Channels,
			OriginalBytes: info.SizeBytes, Elapsed: time.Since(start),
		})
		return journal.OutcomeFailed
	}

	var finalBytes int64
	if stat, err := os.Stat(output); err == nil {
		finalBytes = stat.Size()
	}

	backup, err := Finalize(path, output)
	if err != nil {
		_ = os.Remove(output)
		fileLogger.Error("finalize failed", logging.Error(err))
		s.record(ctx, fileLogger, journal.Entry{
			Path: path, Outcome: journal.OutcomeFailed, Reason: err.Error(),
			OriginalBytes: info.SizeBytes, Elapsed: time.Since(start),
		})
		return journal.OutcomeFailed
	}

	fileLogger.Info("conversion complete",
		logging.String("backup", filepath.Base(backup)),
		logging.String("original_size", humanize.IBytes(uint64(info.SizeBytes))),
		logging.String("final_size", humanize.IBytes(uint64(finalBytes))),
		logging.Duration("elapsed", time.Since(start).Round(time.Second)),
	)
	codec := "eac3"
	if plan.Mode == ModeCopy {
		codec = plan.Primary.Codec
	}
	s.record(ctx, fileLogger, journal.Entry{
		Path: path, Outcome: journal.OutcomeConverted,
		Codec: codec, BitrateKbps: plan.BitrateKbps, Channels: plan.Primary.Channels,
		OriginalBytes: info.SizeBytes, FinalBytes: finalBytes,
		BackupPath: backup, Elapsed: time.Since(start),
	})
	return journal.OutcomeConverted
}

func (s *Service) logStreams(logger *slog.Logger, info MediaInfo) {
	for _, stream := range info.Audio {
		logger.Debug("parsed audio stream",
			logging.Int("index", stream.Index),
			logging.String("codec", stream.Codec),
			logging.String("language", stream.Language),
			logging.Int("bitrate_kbps", stream.BitrateKbps),
			logging.Int("channels", stream.Channels),
			logging.String("title", stream.Title),
		)
	}
	for _, stream := range info.Subtitles {
		logger.Debug("parsed subtitle stream",
			logging.Int("index", stream.Index),
			logging.String("language", stream.Language),
		)
	}
}

// outputPath places intermediate output in the temp dir when one is
// configured, else beside the input.
func (s *Service) outputPath(input string) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(filepath.Base(input), ext)
	name := stem + "_converted" + ext
	if dir := s.cfg.Paths.TempDir; dir != "" {
		return filepath.Join(dir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}

func (s *Service) record(ctx context.Context, logger *slog.Logger, entry journal.Entry) {
	if s.journal == nil {
		return
	}
	entry.SessionID = s.session
	if err := s.journal.Record(ctx, entry); err != nil {
		logger.Warn("failed to record journal entry", logging.Error(err))
	}
}
