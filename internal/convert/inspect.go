package convert

import (
	"context"
	"log/slog"
	"os"

	"tracksmith/internal/logging"
	"tracksmith/internal/media/ffprobe"
)

// MediaInfo is everything the planner and progress estimator need to know
// about one input file.
type MediaInfo struct {
	Path            string
	SizeBytes       int64
	DurationSeconds float64
	FrameRate       float64
	Audio           []AudioStream
	Subtitles       []SubtitleStream
}

// Inspect probes path with ffprobe and assembles stream descriptors. Each
// probe degrades independently: a malformed or empty result yields an
// empty section plus a warning rather than an error, so one broken file
// cannot abort a batch.
func Inspect(ctx context.Context, binary, path string, logger *slog.Logger) (MediaInfo, error) {
	info := MediaInfo{Path: path, FrameRate: 24}

	stat, err := os.Stat(path)
	if err != nil {
		return MediaInfo{}, err
	}
	info.SizeBytes = stat.Size()

	audio, err := ffprobe.AudioStreams(ctx, binary, path)
	if err != nil {
		logger.Warn("ffprobe audio query failed", logging.String("file", path), logging.Error(err))
	}
	for _, stream := range audio {
		info.Audio = append(info.Audio, newAudioStream(stream))
	}

	subs, err := ffprobe.SubtitleStreams(ctx, binary, path)
	if err != nil {
		logger.Warn("ffprobe subtitle query failed", logging.String("file", path), logging.Error(err))
	}
	for _, stream := range subs {
		info.Subtitles = append(info.Subtitles, newSubtitleStream(stream))
	}

	duration, err := ffprobe.ContainerDuration(ctx, binary, path)
	if err != nil {
		logger.Warn("ffprobe duration query failed", logging.String("file", path), logging.Error(err))
	} else {
		info.DurationSeconds = duration
	}

	fps, err := ffprobe.VideoFrameRate(ctx, binary, path)
	if err != nil {
		logger.Warn("ffprobe frame rate query failed", logging.String("file", path), logging.Error(err))
	} else if fps > 0 {
		info.FrameRate = fps
	}

	return info, nil
}
