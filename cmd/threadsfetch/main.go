package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"threadsfetcher/internal/enricher/enricherimpl"
	"threadsfetcher/internal/fetcher/fetcherimpl"
	"threadsfetcher/internal/parser/parserimpl"
	"threadsfetcher/internal/pipeline/pipelineimpl"
	"threadsfetcher/internal/renderer/rendererimpl"
	"threadsfetcher/pkg/config"
	"threadsfetcher/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:          "threadsfetch <post-url>",
	Short:        "Extract a Threads post into a structured JSON record",
	Long:         "Fetches a Threads post through the tiered extraction pipeline (direct HTTP, oEmbed enrichment, headless render) and prints the resulting record as JSON. Exits non-zero only when the URL is not a Threads post URL.",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}
		log := logger.New(logger.Opts{
			Env:       cfg.App.Env,
			SentryDSN: cfg.App.SentryUrl,
		})

		parseClient := parserimpl.New(parserimpl.Opts{Logger: log})
		fetchClient := fetcherimpl.New(fetcherimpl.Opts{
			Parser: parseClient,
			Logger: log,
			Config: cfg,
		})
		enrichClient := enricherimpl.New(enricherimpl.Opts{
			Logger: log,
			Config: cfg,
		})
		navigator := rendererimpl.NewChromeNavigator(rendererimpl.NavigatorOpts{
			Logger: log,
			Config: cfg,
		})
		renderClient := rendererimpl.New(rendererimpl.Opts{
			Navigator: navigator,
			Parser:    parseClient,
			Logger:    log,
		})
		pipe := pipelineimpl.New(pipelineimpl.Opts{
			Fetcher:  fetchClient,
			Enricher: enrichClient,
			Renderer: renderClient,
			Logger:   log,
		})

		post, err := pipe.FetchPost(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(post, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
