// Package redis holds the go-redis client the roster store talks to.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/artifact-tracker/internal/errors"
)

// DefaultDialTimeout bounds how long the first connection may take
const DefaultDialTimeout = 5 * time.Second

// Options tunes the single-node client. The zero value is usable.
type Options struct {
	DB          int
	DialTimeout time.Duration
}

// NewClient builds a client for addr. go-redis connects lazily, so an
// unreachable server only shows up on the first command or on Ping.
func NewClient(addr string, opts *Options) (Client, error) {
	if addr == "" {
		return nil, errors.InvalidArgument("redis address is required")
	}
	if opts == nil {
		opts = &Options{}
	}

	dial := opts.DialTimeout
	if dial <= 0 {
		dial = DefaultDialTimeout
	}

	return redis.NewClient(&redis.Options{
		Addr:        addr,
		DB:          opts.DB,
		DialTimeout: dial,
	}), nil
}

// Ping reports an Unavailable error when the server does not answer
func Ping(ctx context.Context, client Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "redis did not answer ping")
	}
	return nil
}
