// Package cli wires the dashboard core into a cobra command tree. Commands
// construct the API client from explicit configuration and print derived
// views; all mutations go through a Session so the reconciliation policy is
// the same as the dashboard's.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"finboard/internal/api"
	"finboard/internal/config"
	applog "finboard/internal/log"
	"finboard/internal/session"
	"finboard/internal/taxonomy"
)

var (
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "finboard",
	Short: "Transaction dashboard client",
	Long: `finboard fetches transactions for a date range from the backend,
aggregates them by classification and by day, and supports adding,
reclassifying, and normalizing transactions. Every mutation is confirmed by
the backend and followed by a re-fetch; nothing is patched locally.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "path to an optional .env file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// app bundles what every data command needs.
type app struct {
	cfg         *config.Config
	logger      *applog.Logger
	client      *api.Client
	session     *session.Session
	suggestions *taxonomy.Suggestions
}

// setup loads configuration and constructs the client stack. Local .env
// loading is best-effort, matching how the backend URL is provided in
// development.
func setup() (*app, error) {
	_ = godotenv.Load(envFile)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := parseLevel(cfg.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}
	logger := applog.New(applog.Config{
		Level:     level,
		Component: applog.ComponentCLI,
		Handler:   slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	})
	applog.SetDefault(logger)

	client, err := api.New(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	suggestions := taxonomy.Default()
	if cfg.SuggestionsFile != "" {
		suggestions, err = taxonomy.LoadFile(cfg.SuggestionsFile)
		if err != nil {
			return nil, err
		}
	}

	return &app{
		cfg:         cfg,
		logger:      logger,
		client:      client,
		session:     session.New(client, logger),
		suggestions: suggestions,
	}, nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
