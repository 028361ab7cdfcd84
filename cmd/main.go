package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"danawa-crawler/adapters"
	"danawa-crawler/cache"
	"danawa-crawler/extractor"
	"danawa-crawler/internal/config"
	"danawa-crawler/internal/logging"
	"danawa-crawler/report"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "danawa-crawler",
	Short:         "Crawls a Danawa category listing and prints name, power and price per product",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCrawl,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Prints the category codes known to the crawler",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), report.Categories(adapters.Categories()))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ./crawler.yaml)")
	config.RegisterFlags(rootCmd.Flags())
	rootCmd.AddCommand(categoriesCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags(), configFile)
	if err != nil {
		return err
	}

	logger := logging.NewLogger(os.Stderr, cfg.LogLevel, cfg.Verbose)

	pageCache, err := cache.New(cfg)
	if err != nil {
		return err
	}
	defer pageCache.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	startTime := time.Now()
	ext := extractor.NewDanawaExtractor(cfg, logger, pageCache)
	defer ext.Close()

	result, err := ext.Extract(ctx, cfg.Category)
	if err != nil {
		return err
	}
	logger.Infof("Extraction completed in %v", time.Since(startTime))

	var out io.Writer = cmd.OutOrStdout()
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := report.Write(out, result, cfg.Format); err != nil {
		return err
	}
	if cfg.Output != "" {
		logger.Infof("Results written to: %s", cfg.Output)
	}
	return nil
}

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
