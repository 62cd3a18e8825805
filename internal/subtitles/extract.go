package subtitles

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"tracksmith/internal/config"
	"tracksmith/internal/language"
	"tracksmith/internal/logging"
	"tracksmith/internal/media/ffprobe"
)

// Extraction describes one subtitle stream written to disk.
type Extraction struct {
	Index    int
	Language string
	Output   string
}

// extensionForCodec picks the output container for a subtitle codec.
// Image-based formats and anything unrecognized land in .sup.
func extensionForCodec(codec string) string {
	switch strings.ToLower(codec) {
	case "subrip", "srt", "mov_text":
		return ".srt"
	case "ass", "ssa":
		return ".ass"
	case "webvtt":
		return ".vtt"
	case "dvd_subtitle", "dvdsub":
		return ".sub"
	case "hdmv_pgs_subtitle", "pgssub":
		return ".sup"
	}
	return ".sup"
}

// Service extracts embedded subtitle streams from media files.
type Service struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewService(cfg *config.Config, logger *slog.Logger) *Service {
	return &Service{cfg: cfg, logger: logging.NewComponentLogger(logger, "subtitles")}
}

// Extract probes input for subtitle streams and writes each one to
// outputDir as subtitle_<index>_<language> with a codec-derived
// extension. A stream that fails to extract is logged and skipped; the
// remaining streams still come out.
func (s *Service) Extract(ctx context.Context, input, outputDir string) ([]Extraction, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	streams, err := ffprobe.SubtitleStreams(ctx, s.cfg.FFprobeBinary(), input)
	if err != nil {
		return nil, fmt.Errorf("probe subtitle streams: %w", err)
	}
	if len(streams) == 0 {
		s.logger.Info("no subtitles found", logging.String("file", filepath.Base(input)))
		return nil, nil
	}

	var extracted []Extraction
	for _, stream := range streams {
		if ctx.Err() != nil {
			return extracted, ctx.Err()
		}
		lang := language.Normalize(stream.Language())
		name := fmt.Sprintf("subtitle_%d_%s%s", stream.Index, lang, extensionForCodec(stream.CodecName))
		output := filepath.Join(outputDir, name)

		args := []string{
			"-y", "-hide_banner", "-loglevel", "error",
			"-i", input,
			"-map", fmt.Sprintf("0:%d", stream.Index),
			"-c:s", "copy",
			output,
		}
		cmd := exec.CommandContext(ctx, s.cfg.FFmpegBinary(), args...)
		if combined, err := cmd.CombinedOutput(); err != nil {
			s.logger.Warn("subtitle extraction failed",
				logging.Int("stream", stream.Index),
				logging.String("language", lang),
				logging.String("detail", strings.TrimSpace(string(combined))),
				logging.Error(err),
			)
			continue
		}

		s.logger.Info("extracted subtitle stream",
			logging.Int("stream", stream.Index),
			logging.String("language", lang),
			logging.String("output", output),
		)
		extracted = append(extracted, Extraction{Index: stream.Index, Language: lang, Output: output})
	}
	return extracted, nil
}
