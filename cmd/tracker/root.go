package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/artifact-tracker/cmd/tracker/client"
	"github.com/KirkDiggler/artifact-tracker/internal/config"
	"github.com/KirkDiggler/artifact-tracker/internal/logging"
)

// rootOptions carries the flag overrides and what PersistentPreRunE builds from them
type rootOptions struct {
	store      string
	sqlitePath string
	redisAddr  string
	vocabulary string
	maxStats   int
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "artifact-tracker",
		Short:         "Track artifact sets and stats for your characters",
		Long:          `Artifact tracker keeps, per character, the artifact sets and main and sub stats you are farming for, and shows who needs which set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync() // nolint:errcheck // stderr sync fails on some terminals
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.store, "store", config.StoreSQLite, "storage backend: sqlite or redis")
	flags.StringVar(&opts.sqlitePath, "sqlite-path", "tracker.db", "sqlite database file")
	flags.StringVar(&opts.redisAddr, "redis-addr", "localhost:6379", "redis endpoint")
	flags.StringVar(&opts.vocabulary, "vocabulary", "", "vocabulary file or http(s) URL (default built-in)")
	flags.IntVar(&opts.maxStats, "max-stats", 6, "slots per stat list (1-10)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")

	cmd.AddCommand(
		newAddCmd(opts),
		newRemoveCmd(opts),
		newSetCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newTrackerCmd(opts),
		newSetsCmd(opts),
		newSuggestCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newServeCmd(opts),
		newTUICmd(opts),
		client.NewClientCmd(),
	)
	return cmd
}

// setup loads the environment, applies explicit flags on top and builds the logger
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store = o.store
	}
	if flags.Changed("sqlite-path") {
		cfg.SQLitePath = o.sqlitePath
	}
	if flags.Changed("redis-addr") {
		cfg.RedisAddr = o.redisAddr
	}
	if flags.Changed("vocabulary") {
		cfg.Vocabulary = o.vocabulary
	}
	if flags.Changed("max-stats") {
		cfg.MaxStats = o.maxStats
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return err
	}

	o.cfg = cfg
	o.logger = logger
	return nil
}
