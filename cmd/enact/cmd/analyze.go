package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/ejezie/Enact-Pricing/internal/api/client"
)

func analyzeCommand() *cobra.Command {
	var (
		maxResults int
		remote     bool
		refresh    bool
	)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [search term]",
		Short: "Run a market analysis for a search term",
		Long: "Fetches the current eBay results for the search term, extracts\n" +
			"listings, and prints market statistics with pricing recommendations.\n" +
			"With --remote the analysis runs on an enact server instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if remote {
				return runAnalyzeRemote(cmd, args[0], refresh)
			}
			return runAnalyzeLocal(cmd, args[0], maxResults)
		},
	}
	analyzeCmd.Flags().IntVar(&maxResults, "max", 0, "maximum listings to analyze (overrides config)")
	analyzeCmd.Flags().BoolVar(&remote, "remote", false, "run the analysis on a server (--server)")
	analyzeCmd.Flags().BoolVar(&refresh, "refresh", false, "with --remote, force a fresh run")

	return analyzeCmd
}

func runAnalyzeLocal(cmd *cobra.Command, term string, maxResults int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if maxResults > 0 {
		cfg.Extraction.MaxResults = maxResults
	}
	log := newLogger(cfg)

	runner, source, err := newRunner(cfg, log)
	if err != nil {
		return fmt.Errorf("wiring pipeline: %w", err)
	}
	defer source.Close()

	result, err := runner.Run(cmd.Context(), term)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if jsonOutput() {
		return printJSON(result)
	}
	return printRunReport(result)
}

func runAnalyzeRemote(cmd *cobra.Command, term string, refresh bool) error {
	c := apiclient.New(viper.GetString("server"))

	result, err := c.Analyze(cmd.Context(), term, refresh)
	if err != nil {
		return fmt.Errorf("remote analysis: %w", err)
	}

	if jsonOutput() {
		return printJSON(result)
	}
	return printRunReport(result)
}
