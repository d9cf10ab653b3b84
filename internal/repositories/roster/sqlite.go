package roster

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/KirkDiggler/artifact-tracker/internal/entities"
	"github.com/KirkDiggler/artifact-tracker/internal/errors"
	"github.com/KirkDiggler/artifact-tracker/internal/pkg/clock"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS snapshots (
	key      TEXT PRIMARY KEY,
	body     BLOB NOT NULL,
	saved_at INTEGER NOT NULL
)`

// SQLiteConfig contains configuration for the SQLite roster repository.
type SQLiteConfig struct {
	// Path of the database file; ":memory:" is accepted for tests
	Path string
	// Key defaults to DefaultKey
	Key    string
	Clock  clock.Clock
	Logger *zap.Logger
}

// Validate validates the SQLiteConfig.
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Path", cfg.Path, vb)
	return vb.Build()
}

// SQLiteRepository stores the roster snapshot in a single SQLite row.
type SQLiteRepository struct {
	db     *sql.DB
	key    string
	clock  clock.Clock
	logger *zap.Logger
}

// Ensure SQLiteRepository implements Repository
var _ Repository = (*SQLiteRepository)(nil)

// OpenSQLite opens (creating if needed) the database and its schema
func OpenSQLite(ctx context.Context, cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn := cfg.Path
	if dsn != ":memory:" {
		dsn = filepath.Clean(dsn) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite database %s", cfg.Path)
	}
	// ":memory:" databases live only as long as their connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to reach sqlite database")
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to create schema")
	}

	key := strings.TrimSpace(cfg.Key)
	if key == "" {
		key = DefaultKey
	}
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SQLiteRepository{
		db:     db,
		key:    key,
		clock:  c,
		logger: logger.With(zap.String("store", "sqlite"), zap.String("key", key)),
	}, nil
}

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Load returns the stored roster
func (r *SQLiteRepository) Load(ctx context.Context, _ LoadInput) (*LoadOutput, error) {
	var body []byte
	err := r.db.QueryRowContext(ctx, `SELECT body FROM snapshots WHERE key = ?`, r.key).Scan(&body)
	if err == sql.ErrNoRows {
		r.logger.Debug("no stored roster, starting empty")
		return &LoadOutput{Characters: []entities.CharacterData{}}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read roster")
	}

	characters, err := decodeSnapshot(r.key, body)
	if err != nil {
		r.logger.Error("stored roster is corrupted", zap.Error(err))
		return nil, err
	}

	r.logger.Debug("loaded roster", zap.Int("count", len(characters)))
	return &LoadOutput{Characters: characters, Found: true}, nil
}

// Save overwrites the stored roster
func (r *SQLiteRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	data, err := encodeSnapshot(input.Characters)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, body, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, saved_at = excluded.saved_at`,
		r.key, data, r.clock.Now().UTC().UnixMilli())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save roster")
	}

	r.logger.Debug("saved roster",
		zap.Int("count", len(input.Characters)),
		zap.Int("bytes", len(data)))

	return &SaveOutput{Bytes: len(data)}, nil
}
