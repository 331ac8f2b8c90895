package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Andrew77447/newsapp/internal/cache"
	"github.com/Andrew77447/newsapp/internal/config"
	"github.com/Andrew77447/newsapp/internal/headlines"
	"github.com/Andrew77447/newsapp/internal/newsdata"
	"github.com/Andrew77447/newsapp/internal/query"
	"github.com/Andrew77447/newsapp/internal/render"
)

const fetchTimeout = 30 * time.Second

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagQuery    string
	flagCategory string
	flagCountry  string
	flagLanguage string
	flagLimit    int
	flagConfig   string
	flagPlain    bool
	flagNoCache  bool
)

var rootCmd = &cobra.Command{
	Use:   "newsapp",
	Short: "News headlines in your terminal or browser",
	Long: `newsapp fetches the latest headlines from NewsData.io and shows them
as a terminal table, an interactive browser, or a small web page.`,
	RunE:          runTerminal,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagQuery, "query", "q", "", "free-text search keywords")
	rootCmd.PersistentFlags().StringVarP(&flagCategory, "category", "c", "", "news category (business, technology, ...)")
	rootCmd.PersistentFlags().StringVar(&flagCountry, "country", "", "two-letter country code (us, gb, ro, ...)")
	rootCmd.PersistentFlags().StringVarP(&flagLanguage, "language", "l", "", "language of news (default from config)")
	rootCmd.PersistentFlags().IntVarP(&flagLimit, "limit", "n", 0, "number of headlines (1-100, default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().BoolVar(&flagPlain, "plain", false, "force plain-text output")
	rootCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "bypass the cache and fetch fresh results")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("newsapp %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func runTerminal(cmd *cobra.Command, args []string) error {
	cfg, svc, err := buildService()
	if err != nil {
		return err
	}
	filters := buildFilters(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	var articles []cache.Article
	if flagNoCache {
		articles, err = svc.FetchFresh(ctx, filters)
	} else {
		articles, err = svc.Fetch(ctx, filters)
	}
	if err != nil {
		return err
	}

	styled := !flagPlain && render.IsTerminal(os.Stdout)
	render.Articles(os.Stdout, articles, filters.Describe(), styled)
	return nil
}

// buildService wires config, cache store, API client and pipeline together.
func buildService() (*config.Config, *headlines.Service, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.Key() == "" {
		return nil, nil, errors.New("NewsData.io API key not set: add api_key to the config file or set NEWSDATA_API_KEY")
	}

	store := cache.NewStore(cfg.CacheTTL(), cfg.CacheMaxEntries())
	client := newsdata.New(cfg.Key(), cfg.BaseURL)
	svc := headlines.NewService(client, store, newLogger())
	return cfg, svc, nil
}

// buildFilters folds flags over config defaults and normalizes the result.
func buildFilters(cfg *config.Config) query.Filters {
	language := flagLanguage
	if language == "" {
		language = cfg.Language
	}
	limit := flagLimit
	if limit == 0 {
		limit = cfg.Limit
	}
	return query.Normalize(flagQuery, flagCategory, flagCountry, language, limit)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
