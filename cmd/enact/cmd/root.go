// Package cmd implements the enact CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ejezie/Enact-Pricing/internal/config"
	"github.com/ejezie/Enact-Pricing/pkg/logger"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "enact",
		Short: "Marketplace price analysis for eBay search terms",
		Long: "enact fetches eBay search results, extracts listings with a\n" +
			"local or hosted LLM where the markup alone is not enough, and\n" +
			"produces market statistics with pricing recommendations.",
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file path (default config.yaml if present)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL for remote commands")
	rootCmd.PersistentFlags().
		String("output", "text", "output format (text, json)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(analyzeCommand())
	rootCmd.AddCommand(chatCommand())
	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(versionCommand())
}

func initConfig() {
	// API keys usually live in a local .env during development.
	_ = godotenv.Load()

	viper.SetEnvPrefix("ENACT")
	viper.AutomaticEnv()
}

// loadConfig reads the configured file, or falls back to defaults when no
// file was given and none exists at the default location.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err != nil {
			return config.Default(), nil
		}
		path = "config.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Logging.Level, cfg.Logging.Format)
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
