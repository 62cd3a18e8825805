package convert

import (
	"context"
	"fmt"
	"time"

	"tracksmith/internal/media/ffprobe"
)

// PredictSize estimates the output file size in bytes so progress can be
// derived from the growing output. Encodes sum the video bitrate (or 95%
// of the input when untagged) and the target audio bitrate over the
// container duration, padded 5% for muxing overhead. Copies assume the
// output lands near 90% of the input since streams are being dropped.
func PredictSize(ctx context.Context, binary string, info MediaInfo, plan Plan) int64 {
	if plan.Mode != ModeEncode {
		return int64(float64(info.SizeBytes) * 0.9)
	}

	var videoBytes float64
	if bitrate, err := ffprobe.VideoBitRate(ctx, binary, info.Path); err == nil && bitrate > 0 {
		videoBytes = float64(bitrate) * info.DurationSeconds / 8
	} else {
		videoBytes = float64(info.SizeBytes) * 0.95
	}
	audioBytes := float64(plan.BitrateKbps) * 1000 * info.DurationSeconds / 8
	return int64((videoBytes + audioBytes) * 1.05)
}

// Snapshot is one progress observation.
type Snapshot struct {
	Percent     float64
	ETA         time.Duration
	OutputBytes int64
	// MBPerSec is the output growth rate; EncodeSpeed is media seconds
	// encoded per wall second, available only when ffmpeg reports
	// out_time_us. EncodeSpeed wins when both are known.
	MBPerSec    float64
	EncodeSpeed float64
}

// SpeedLabel renders the most meaningful speed figure, or "..." while
// none is known yet.
func (s Snapshot) SpeedLabel() string {
	if s.EncodeSpeed > 0 {
		return fmt.Sprintf("%.2fx", s.EncodeSpeed)
	}
	if s.MBPerSec > 0 {
		return fmt.Sprintf("%.1f MB/s", s.MBPerSec)
	}
	return "..."
}

// tracker turns raw output-size observations into Snapshots. Percent is
// output size over predicted size, capped at 99 until ffmpeg exits; ETA
// extrapolates linearly from elapsed time and percent.
type tracker struct {
	predicted int64
	start     time.Time

	lastSize     int64
	lastSizeTime time.Time
	lastMBPerSec float64
}

func newTracker(predicted int64, start time.Time) *tracker {
	return &tracker{predicted: predicted, start: start, lastSizeTime: start}
}

func (t *tracker) observe(outputBytes, outTimeUs int64, now time.Time) Snapshot {
	snap := Snapshot{OutputBytes: outputBytes}

	if t.predicted > 0 {
		snap.Percent = float64(outputBytes) / float64(t.predicted) * 100
		if snap.Percent > 99 {
			snap.Percent = 99
		}
	}

	elapsed := now.Sub(t.start)
	if elapsed > 500*time.Millisecond {
		window := now.Sub(t.lastSizeTime)
		if window > 0 {
			t.lastMBPerSec = float64(outputBytes-t.lastSize) / (1 << 20) / window.Seconds()
			t.lastSize = outputBytes
			t.lastSizeTime = now
		}
		snap.MBPerSec = t.lastMBPerSec
	}

	if outTimeUs > 0 && elapsed > 0 {
		mediaSeconds := float64(outTimeUs) / 1e6
		snap.EncodeSpeed = mediaSeconds / elapsed.Seconds()
	}

	if snap.Percent > 0.1 && elapsed > 0 {
		total := time.Duration(float64(elapsed) / snap.Percent * 100)
		snap.ETA = total - elapsed
	}

	return snap
}
