package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"tracksmith/internal/config"
	"tracksmith/internal/language"
	"tracksmith/internal/subtitles"
)

func newSubtitlesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtitles <file> [output-dir]",
		Short: "Extract embedded subtitle streams from a media file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			input, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			outputDir := filepath.Dir(input)
			if len(args) == 2 {
				outputDir, err = config.ExpandPath(args[1])
				if err != nil {
					return err
				}
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc := subtitles.NewService(cfg, logger)
			extracted, err := svc.Extract(runCtx, input, outputDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(extracted) == 0 {
				fmt.Fprintln(out, "No subtitles extracted.")
				return nil
			}
			for _, sub := range extracted {
				fmt.Fprintf(out, "Extracted stream %d (%s) to %s\n", sub.Index, language.DisplayName(sub.Language), sub.Output)
			}
			return nil
		},
	}
	return cmd
}
