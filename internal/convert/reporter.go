package convert

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"tracksmith/internal/logging"
)

// Reporter receives progress observations for one ffmpeg run.
type Reporter interface {
	Update(snap Snapshot)
	Done(success bool)
}

// NewReporter picks a terminal progress bar on a TTY and sampled log
// lines otherwise, so batch output stays readable under redirection.
func NewReporter(file string, predicted int64, logger *slog.Logger) Reporter {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return newBarReporter(file, predicted)
	}
	return &logReporter{
		file:    file,
		logger:  logger,
		sampler: logging.NewProgressSampler(5),
	}
}

type barReporter struct {
	bar   *progressbar.ProgressBar
	label string
}

func newBarReporter(file string, predicted int64) *barReporter {
	label := filepath.Base(file)
	bar := progressbar.NewOptions64(predicted,
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(250*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetPredictTime(true),
	)
	return &barReporter{bar: bar, label: label}
}

func (r *barReporter) Update(snap Snapshot) {
	_ = r.bar.Set64(snap.OutputBytes)
	if speed := snap.SpeedLabel(); speed != "..." {
		r.bar.Describe(fmt.Sprintf("%s %s", r.label, speed))
	}
}

func (r *barReporter) Done(success bool) {
	if success {
		_ = r.bar.Finish()
		return
	}
	_ = r.bar.Clear()
}

type logReporter struct {
	file    string
	logger  *slog.Logger
	sampler *logging.ProgressSampler
}

func (r *logReporter) Update(snap Snapshot) {
	if !r.sampler.ShouldLog(snap.Percent, "convert") {
		return
	}
	attrs := []logging.Attr{
		logging.String("file", filepath.Base(r.file)),
		logging.Float64("percent", snap.Percent),
		logging.String("speed", snap.SpeedLabel()),
	}
	if snap.ETA > 0 {
		attrs = append(attrs, logging.Duration("eta", snap.ETA.Round(time.Second)))
	}
	r.logger.Info("conversion progress", logging.Args(attrs...)...)
}

func (r *logReporter) Done(success bool) {
	r.sampler.Reset()
}
