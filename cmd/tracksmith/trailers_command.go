package main

import (
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"tracksmith/internal/config"
	"tracksmith/internal/trailers"
)

func newTrailersCommand(ctx *commandContext) *cobra.Command {
	var (
		outputDir      string
		apiKey         string
		patterns       string
		cookiesBrowser string
		cookiesFile    string
		dryRun         bool
	)

	cmd := &cobra.Command{
		Use:   "trailers [directory]",
		Short: "Download movie trailers via TMDB and yt-dlp",
		Long: "Looks up each movie on The Movie Database (title from a sibling " +
			".nfo when present) and downloads its first YouTube trailer.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("api-key") {
				cfg.TMDB.APIKey = strings.TrimSpace(apiKey)
			}
			if cmd.Flags().Changed("patterns") {
				cfg.Trailers.Patterns = splitPatterns(patterns)
			}
			if cmd.Flags().Changed("cookies-browser") {
				cfg.Trailers.CookiesBrowser = strings.TrimSpace(cookiesBrowser)
			}
			if cmd.Flags().Changed("cookies-file") {
				cfg.Trailers.CookiesFile = strings.TrimSpace(cookiesFile)
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
			output := strings.TrimSpace(outputDir)
			if output != "" {
				output, err = config.ExpandPath(output)
				if err != nil {
					return err
				}
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			svc, err := trailers.NewService(cfg, logger)
			if err != nil {
				return fmt.Errorf("set --api-key or TMDB_API_KEY: %w", err)
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			summary, err := svc.Run(runCtx, directory, output, dryRun)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scanned %d file(s): %d downloaded, %d without trailers, %d failed\n",
				summary.Scanned, summary.Downloaded, summary.NotFound, summary.Failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for downloaded trailers")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "TMDB API key (or set TMDB_API_KEY)")
	cmd.Flags().StringVar(&patterns, "patterns", "", "Comma-separated glob patterns for movie files")
	cmd.Flags().StringVar(&cookiesBrowser, "cookies-browser", "", "Browser profile for yt-dlp --cookies-from-browser")
	cmd.Flags().StringVar(&cookiesFile, "cookies-file", "", "Cookies file passed to yt-dlp")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve trailers without downloading")
	return cmd
}

func splitPatterns(value string) []string {
	var patterns []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			patterns = append(patterns, part)
		}
	}
	return patterns
}
