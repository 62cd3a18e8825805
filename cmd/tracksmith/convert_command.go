package main

import (
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"tracksmith/internal/config"
	"tracksmith/internal/convert"
	"tracksmith/internal/language"
	"tracksmith/internal/logging"
	"tracksmith/internal/preflight"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var (
		workers     int
		tempDir     string
		hwAccel     bool
		hwAccelType string
		languages   string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "convert [directory]",
		Short: "Convert library audio streams to AC3/E-AC3",
		Long: "Walks a directory of video files, keeps audio and subtitles in the " +
			"configured languages, and converts the best audio stream to E-AC3. " +
			"Originals are preserved as timestamped backups.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			applyConvertFlags(cmd, cfg, workers, tempDir, hwAccel, hwAccelType, languages)
			if err := cfg.Validate(); err != nil {
				return err
			}

			directory := cfg.Paths.LibraryDir
			if len(args) == 1 {
				directory, err = config.ExpandPath(args[0])
				if err != nil {
					return err
				}
			}
			if strings.TrimSpace(directory) == "" {
				return errors.New("directory is required (argument or library_dir in config)")
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if err := requireConversionTools(cfg); err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, err := ctx.openJournal(runCtx)
			if err != nil {
				logger.Warn("conversion journal unavailable", logging.Error(err))
				store = nil
			} else {
				defer store.Close()
			}

			svc := convert.NewService(cfg, logger, store)
			summary, err := svc.Run(runCtx, directory, dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scanned %d file(s): %d converted, %d skipped, %d failed\n",
				summary.Scanned, summary.Converted, summary.Skipped, summary.Failed)
			if summary.Failed > 0 {
				return fmt.Errorf("%d file(s) failed", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel conversion jobs (default from config)")
	cmd.Flags().StringVar(&tempDir, "temp-dir", "", "Local temp directory for intermediate output")
	cmd.Flags().BoolVar(&hwAccel, "hw-accel", false, "Enable hardware-accelerated decoding")
	cmd.Flags().StringVar(&hwAccelType, "hw-accel-type", "", "Hardware acceleration type (auto, nvenc, qsv, amf)")
	cmd.Flags().StringVar(&languages, "languages", "", "Comma-separated language tags to keep (e.g. eng,por)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan conversions without running ffmpeg")
	return cmd
}

// applyConvertFlags layers explicitly-set flags over the loaded config.
func applyConvertFlags(cmd *cobra.Command, cfg *config.Config, workers int, tempDir string, hwAccel bool, hwAccelType, languages string) {
	if cmd.Flags().Changed("workers") {
		cfg.Convert.Workers = workers
	}
	if cmd.Flags().Changed("temp-dir") {
		if expanded, err := config.ExpandPath(tempDir); err == nil {
			cfg.Paths.TempDir = expanded
		}
	}
	if cmd.Flags().Changed("hw-accel") {
		cfg.Convert.HWAccel = hwAccel
	}
	if cmd.Flags().Changed("hw-accel-type") {
		cfg.Convert.HWAccelType = strings.ToLower(strings.TrimSpace(hwAccelType))
	}
	if cmd.Flags().Changed("languages") {
		cfg.Convert.Languages = language.ParseList(languages).Values()
	}
}

// requireConversionTools fails fast when ffmpeg or ffprobe is missing.
func requireConversionTools(cfg *config.Config) error {
	for _, status := range preflight.CheckSystemDeps(cfg) {
		if !status.Available && !status.Optional {
			return fmt.Errorf("%s not found on PATH (%s)", status.Name, status.Detail)
		}
	}
	return nil
}
