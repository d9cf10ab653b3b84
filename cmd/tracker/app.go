package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/artifact-tracker/internal/clients/vocabulary"
	"github.com/KirkDiggler/artifact-tracker/internal/config"
	"github.com/KirkDiggler/artifact-tracker/internal/errors"
	"github.com/KirkDiggler/artifact-tracker/internal/orchestrators/tracker"
	redisclient "github.com/KirkDiggler/artifact-tracker/internal/redis"
	"github.com/KirkDiggler/artifact-tracker/internal/repositories/roster"
)

// app is the wired tracker: storage, vocabulary and orchestrator
type app struct {
	tracker tracker.Service
	logger  *zap.Logger
	closers []func() error
}

// openApp wires the tracker from cfg and loads the stored roster. The
// vocabulary is loaded before any list is built.
func openApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	a := &app{logger: logger}

	repo, err := a.openRepository(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	loader, err := vocabulary.New(&vocabulary.Config{
		Source: cfg.Vocabulary,
		Logger: logger.Named("vocabulary"),
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	vocab, err := loader.Load(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	svc, err := tracker.NewOrchestrator(&tracker.Config{
		Repository: repo,
		Vocabulary: vocab.Vocabulary,
		Limits:     cfg.Limits(),
		Logger:     logger.Named("tracker"),
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	if _, err := svc.Load(ctx, &tracker.LoadInput{}); err != nil {
		a.Close()
		return nil, err
	}

	a.tracker = svc
	return a, nil
}

func (a *app) openRepository(ctx context.Context, cfg *config.Config) (roster.Repository, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client, err := redisclient.NewClient(cfg.RedisAddr, &redisclient.Options{})
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to create redis client")
		}
		a.closers = append(a.closers, client.Close)
		if err := redisclient.Ping(ctx, client); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is not reachable").
				WithMeta("addr", cfg.RedisAddr)
		}
		return roster.NewRedis(&roster.RedisConfig{
			Client: client,
			Key:    cfg.StorageKey,
			Logger: a.logger.Named("roster"),
		})
	default:
		repo, err := roster.OpenSQLite(ctx, &roster.SQLiteConfig{
			Path:   cfg.SQLitePath,
			Key:    cfg.StorageKey,
			Logger: a.logger.Named("roster"),
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, repo.Close)
		return repo, nil
	}
}

// Close releases storage connections
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("failed to close resource", zap.Error(err))
		}
	}
	a.closers = nil
}
