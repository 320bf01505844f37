package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/timelinehq/aitimeline/internal/config"
	"github.com/timelinehq/aitimeline/internal/pipeline"
	"github.com/timelinehq/aitimeline/internal/server"
	"github.com/timelinehq/aitimeline/internal/store"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "aitimeline",
	Short:   "Daily AI news timeline posts",
	Long:    "aitimeline ingests AI news from RSS, arXiv, Hacker News, and Reddit, ranks the best items, and generates a daily timeline post.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("aitimeline", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/aitimeline/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure feeds, credibility scores, and API keys.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show archive and configuration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		count, err := db.CountPosts()
		if err != nil {
			return fmt.Errorf("counting posts: %w", err)
		}

		fmt.Printf("Today: %s\n\n", store.Today())
		fmt.Println("Archive:")
		fmt.Printf("  Posts: %d\n", count)
		if latest, _ := db.LatestPost(); latest != nil {
			fmt.Printf("  Latest: %s (%s)\n", latest.DateID, latest.Headline)
		}

		fmt.Println("\nConfiguration:")
		fmt.Printf("  RSS feeds: %d\n", len(cfg.Sources.Feeds))
		fmt.Printf("  arXiv: %v\n", cfg.Sources.Arxiv.Enabled)
		fmt.Printf("  Hacker News: %v\n", cfg.Sources.HackerNews.Enabled)
		fmt.Printf("  Reddit: %v\n", cfg.Sources.Reddit.Enabled)
		fmt.Printf("  Top N: %d\n", cfg.Processing.TopN)

		if problems := cfg.Validate(); len(problems) > 0 {
			fmt.Println("\nProblems:")
			for _, p := range problems {
				fmt.Printf("  - %s\n", p)
			}
		}
		return nil
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured sources and their credibility scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("RSS feeds:")
		for _, f := range cfg.Sources.Feeds {
			fmt.Printf("  %-28s credibility %2d  %s\n", f.Name, cfg.Credibility.Of(f.Name), f.URL)
		}

		if cfg.Sources.Arxiv.Enabled {
			fmt.Printf("\narXiv: categories %v, credibility %d\n",
				cfg.Sources.Arxiv.Categories, cfg.Credibility.Of("arXiv"))
		}
		if cfg.Sources.HackerNews.Enabled {
			fmt.Printf("Hacker News: %d keywords, min %d points, credibility %d\n",
				len(cfg.Sources.HackerNews.Keywords), cfg.Sources.HackerNews.MinPoints,
				cfg.Credibility.Of("Hacker News"))
		}
		if cfg.Sources.Reddit.Enabled {
			fmt.Printf("Reddit: subreddits %v\n", cfg.Sources.Reddit.Subreddits)
		}
		return nil
	},
}

// --- run command ---

var (
	dryRun       bool
	runMode      string
	runTopN      int
	fetchContent bool
	outputDir    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: ingest -> rank -> generate -> save",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := pipeline.Mode(runMode)
		if err != nil {
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		pipe := pipeline.New(cfg, db)
		opts := pipeline.Options{
			Mode:         mode,
			TopN:         runTopN,
			FetchContent: fetchContent,
			OutputDir:    outputDir,
		}

		var result *pipeline.Result
		if dryRun {
			result = pipe.DryRun(opts)
		} else {
			result = pipe.Run(context.Background(), opts)
		}

		for i, step := range result.Steps {
			fmt.Printf("\nStep %d: %s\n", i+1, step.Name)
			if step.Err != nil {
				fmt.Printf("  Error: %v\n", step.Err)
			} else {
				fmt.Printf("  %s\n", step.Summary)
			}
		}

		for _, step := range result.Steps {
			if step.Err != nil {
				return fmt.Errorf("pipeline failed at %s: %w", step.Name, step.Err)
			}
		}

		if !dryRun {
			fmt.Println("\nPipeline complete! Run 'aitimeline serve' to view the post.")
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without executing")
	runCmd.Flags().StringVar(&runMode, "mode", "daily", "Lookback mode: daily, realtime, or weekly")
	runCmd.Flags().IntVar(&runTopN, "top", 0, "Override number of items to include")
	runCmd.Flags().BoolVar(&fetchContent, "fetch-content", false, "Fetch full article content for selected items")
	runCmd.Flags().StringVar(&outputDir, "output", "", "Override output directory")
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local preview server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(db, port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (default from config)")
}

func openDB() (*store.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "aitimeline.db")
	return store.Open(dbPath)
}
