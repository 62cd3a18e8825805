package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"tracksmith/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the conversion journal",
	}
	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))
	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent conversion outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openJournal(cmd.Context())
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Journal is empty.")
				return nil
			}

			rows := make([]table.Row, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, table.Row{
					entry.CreatedAt.Local().Format("2006-01-02 15:04"),
					filepath.Base(entry.Path),
					string(entry.Outcome),
					entryDetail(entry),
					sizeDelta(entry),
					entry.Elapsed.Round(time.Second).String(),
				})
			}
			fmt.Fprintln(out, renderTable(table.Row{"When", "File", "Outcome", "Detail", "Size", "Took"}, rows, 5, 6))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to show")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openJournal(cmd.Context())
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Journal cleared.")
			return nil
		},
	}
}

func entryDetail(entry journal.Entry) string {
	switch entry.Outcome {
	case journal.OutcomeConverted:
		if entry.BitrateKbps > 0 {
			return fmt.Sprintf("%s %dkbps %dch", entry.Codec, entry.BitrateKbps, entry.Channels)
		}
		return entry.Codec
	default:
		return entry.Reason
	}
}

// sizeDelta renders original -> final sizes for converted files.
func sizeDelta(entry journal.Entry) string {
	if entry.OriginalBytes <= 0 {
		return ""
	}
	original := humanize.IBytes(uint64(entry.OriginalBytes))
	if entry.FinalBytes <= 0 {
		return original
	}
	return fmt.Sprintf("%s -> %s", original, humanize.IBytes(uint64(entry.FinalBytes)))
}
