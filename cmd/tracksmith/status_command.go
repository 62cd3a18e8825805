package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"tracksmith/internal/config"
	"tracksmith/internal/convert"
	"tracksmith/internal/language"
	"tracksmith/internal/logging"
	"tracksmith/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [sample-file]",
		Short: "Verify external tools, directories, and TMDB access",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			depRows := make([]table.Row, 0, 3)
			failures := 0
			for _, status := range preflight.CheckSystemDeps(cfg) {
				state := "ok"
				detail := status.Version
				if !status.Available {
					detail = status.Detail
					if status.Optional {
						state = "missing (optional)"
					} else {
						state = "missing"
						failures++
					}
				}
				depRows = append(depRows, table.Row{status.Name, state, detail})
			}
			fmt.Fprintln(out, renderTable(table.Row{"Tool", "Status", "Detail"}, depRows))

			checkRows := make([]table.Row, 0, 4)
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				state := "ok"
				if !result.Passed {
					state = "failed"
					failures++
				}
				checkRows = append(checkRows, table.Row{result.Name, state, result.Detail})
			}
			if len(checkRows) > 0 {
				fmt.Fprintln(out, renderTable(table.Row{"Check", "Status", "Detail"}, checkRows))
			}

			if len(args) == 1 {
				if err := probeSample(cmd, ctx, args[0]); err != nil {
					return err
				}
			}

			if failures > 0 {
				return fmt.Errorf("%d check(s) failed", failures)
			}
			fmt.Fprintln(out, "Environment looks good.")
			return nil
		},
	}
	return cmd
}

// probeSample inspects one media file and prints its stream layout, a
// quick way to confirm ffprobe parsing end to end.
func probeSample(cmd *cobra.Command, ctx *commandContext, path string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return err
	}
	info, err := convert.Inspect(cmd.Context(), cfg.FFprobeBinary(), expanded, logging.NewNop())
	if err != nil {
		return fmt.Errorf("inspect %s: %w", expanded, err)
	}

	rows := make([]table.Row, 0, len(info.Audio)+len(info.Subtitles))
	for _, stream := range info.Audio {
		rows = append(rows, table.Row{
			stream.Index, "audio", stream.Codec,
			language.DisplayName(stream.Language),
			fmt.Sprintf("%dch", stream.Channels),
			fmt.Sprintf("%dkbps", stream.BitrateKbps),
		})
	}
	for _, stream := range info.Subtitles {
		rows = append(rows, table.Row{
			stream.Index, "subtitle", stream.Codec,
			language.DisplayName(stream.Language), "", "",
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(table.Row{"#", "Type", "Codec", "Language", "Channels", "Bitrate"}, rows, 1, 5, 6))
	fmt.Fprintf(out, "Duration: %.1fs  Frame rate: %.3f\n", info.DurationSeconds, info.FrameRate)
	return nil
}
