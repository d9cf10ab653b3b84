// Package config reads the tracker settings from the environment
package config

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/artifact-tracker/internal/entities"
	"github.com/KirkDiggler/artifact-tracker/internal/errors"
	"github.com/KirkDiggler/artifact-tracker/internal/repositories/roster"
)

// Store backends
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// DefaultEnvFile is read by Load when no files are given
const DefaultEnvFile = ".env"

// Config holds every setting of the tracker. Command line flags may
// override individual fields after Load.
type Config struct {
	Store      string `env:"TRACKER_STORE" envDefault:"sqlite"`
	SQLitePath string `env:"TRACKER_SQLITE_PATH" envDefault:"tracker.db"`
	RedisAddr  string `env:"TRACKER_REDIS_ADDR" envDefault:"localhost:6379"`
	StorageKey string `env:"TRACKER_STORAGE_KEY" envDefault:"genshinTracker_v1"`
	Vocabulary string `env:"TRACKER_VOCABULARY"`
	MaxStats   int    `env:"TRACKER_MAX_STATS" envDefault:"6"`
	LogLevel   string `env:"TRACKER_LOG_LEVEL" envDefault:"info"`
	LogDev     bool   `env:"TRACKER_LOG_DEV" envDefault:"false"`
	GRPCPort   int    `env:"TRACKER_GRPC_PORT" envDefault:"50051"`
}

// Load reads the optional env files (.env by default) into the process
// environment and parses it. Variables already set win over file values.
// A missing file is not an error.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read env file %s", f)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	return &cfg, nil
}

// Validate checks the settings and normalizes case where it does not matter.
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if strings.TrimSpace(c.StorageKey) == "" {
		c.StorageKey = roster.DefaultKey
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("store", c.Store, []string{StoreSQLite, StoreRedis}, vb)
	switch c.Store {
	case StoreSQLite:
		errors.ValidateRequired("sqlite_path", c.SQLitePath, vb)
	case StoreRedis:
		errors.ValidateRequired("redis_addr", c.RedisAddr, vb)
	}
	errors.ValidateRange("max_stats", c.MaxStats, entities.MinMaxStats, entities.MaxMaxStats, vb)
	errors.ValidateEnum("log_level", c.LogLevel, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateRange("grpc_port", c.GRPCPort, 1, 65535, vb)

	return vb.Build()
}

// Limits returns the list capacities configured for the tracker
func (c *Config) Limits() entities.Limits {
	return entities.Limits{MaxSets: entities.MaxSets, MaxStats: c.MaxStats}
}
