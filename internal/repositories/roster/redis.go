package roster

import (
	"context"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/artifact-tracker/internal/entities"
	"github.com/KirkDiggler/artifact-tracker/internal/errors"
	redisclient "github.com/KirkDiggler/artifact-tracker/internal/redis"
)

type redisRepository struct {
	client redisclient.Client
	key    string
	logger *zap.Logger
}

// RedisConfig contains configuration for the Redis roster repository.
type RedisConfig struct {
	Client redisclient.Client
	// Key defaults to DefaultKey
	Key    string
	Logger *zap.Logger
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed roster repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &redisRepository{
		client: cfg.Client,
		key:    key,
		logger: logger.With(zap.String("store", "redis"), zap.String("key", key)),
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Load(ctx context.Context, _ LoadInput) (*LoadOutput, error) {
	result, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			r.logger.Debug("no stored roster, starting empty")
			return &LoadOutput{Characters: []entities.CharacterData{}}, nil
		}
		return nil, errors.Wrapf(err, "failed to get roster")
	}

	characters, err := decodeSnapshot(r.key, result)
	if err != nil {
		r.logger.Error("stored roster is corrupted", zap.Error(err))
		return nil, err
	}

	r.logger.Debug("loaded roster", zap.Int("count", len(characters)))
	return &LoadOutput{Characters: characters, Found: true}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	data, err := encodeSnapshot(input.Characters)
	if err != nil {
		return nil, err
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save roster")
	}

	r.logger.Debug("saved roster",
		zap.Int("count", len(input.Characters)),
		zap.Int("bytes", len(data)))

	return &SaveOutput{Bytes: len(data)}, nil
}
