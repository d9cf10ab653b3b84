// Package vocabulary loads the static game data every choice list draws from
package vocabulary

//go:generate mockgen -destination=mock/mock_loader.go -package=vocabularymock github.com/KirkDiggler/artifact-tracker/internal/clients/vocabulary Loader

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/artifact-tracker/internal/entities"
	"github.com/KirkDiggler/artifact-tracker/internal/errors"
)

//go:embed default.yaml
var defaultDocument []byte

// SourceBuiltin names the embedded vocabulary
const SourceBuiltin = "builtin"

// maxDocumentBytes bounds remote documents
const maxDocumentBytes = 4 << 20

// Loader fetches the vocabulary once at startup
type Loader interface {
	// Load returns the vocabulary.
	// Unless the loader is strict, a failed fetch falls back to an empty
	// vocabulary with FellBack set and Cause holding the failure.
	Load(ctx context.Context) (*LoadOutput, error)
}

// LoadOutput is the result of loading the vocabulary
type LoadOutput struct {
	Vocabulary *entities.Vocabulary
	Source     string
	FellBack   bool
	Cause      error
}

// Config contains configuration options for the vocabulary loader.
type Config struct {
	// Source is a file path, an http(s) URL, or empty for the built-in vocabulary
	Source string
	// Strict turns load failures into errors instead of an empty fallback
	Strict bool
	// HTTPTimeout for remote sources (optional, defaults to 10 seconds)
	HTTPTimeout time.Duration
	HTTPClient  *http.Client
	Logger      *zap.Logger
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	if cfg.HTTPTimeout < 0 {
		return errors.InvalidArgument("http timeout cannot be negative")
	}
	return nil
}

type loader struct {
	source     string
	strict     bool
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a vocabulary loader
func New(cfg *Config) (Loader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &loader{
		source:     strings.TrimSpace(cfg.Source),
		strict:     cfg.Strict,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

func (l *loader) Load(ctx context.Context) (*LoadOutput, error) {
	source := l.source
	if source == "" {
		source = SourceBuiltin
	}

	vocab, err := l.fetch(ctx, source)
	if err != nil {
		if l.strict {
			return nil, err
		}
		l.logger.Warn("vocabulary unavailable, continuing with an empty one",
			zap.String("source", source),
			zap.Error(err))
		return &LoadOutput{
			Vocabulary: &entities.Vocabulary{},
			Source:     source,
			FellBack:   true,
			Cause:      err,
		}, nil
	}

	l.logger.Info("vocabulary loaded",
		zap.String("source", source),
		zap.Int("characters", len(vocab.Characters)),
		zap.Int("artifact_sets", len(vocab.ArtifactSets)))

	return &LoadOutput{Vocabulary: vocab, Source: source}, nil
}

func (l *loader) fetch(ctx context.Context, source string) (*entities.Vocabulary, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case source == SourceBuiltin:
		data = defaultDocument
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		data, err = l.fetchRemote(ctx, source)
	default:
		data, err = os.ReadFile(source)
		if err != nil {
			err = errors.WrapWithCode(err, errors.CodeNotFound, "failed to read vocabulary file").
				WithMeta("source", source)
		}
	}
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

func (l *loader) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid vocabulary url")
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to fetch vocabulary").
			WithMeta("source", url)
	}
	defer func() {
		_ = resp.Body.Close() // nolint:errcheck // read-only body
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Unavailablef("vocabulary fetch returned %s", resp.Status).
			WithMeta("source", url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read vocabulary response")
	}
	return data, nil
}

// Parse decodes a YAML or JSON vocabulary document
func Parse(data []byte) (*entities.Vocabulary, error) {
	var vocab entities.Vocabulary
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed vocabulary document")
	}

	for i, c := range vocab.Characters {
		if strings.TrimSpace(c.Name) == "" {
			return nil, errors.InvalidArgumentf("character entry %d has no name", i)
		}
	}
	for i, s := range vocab.ArtifactSets {
		if strings.TrimSpace(s.Name) == "" {
			return nil, errors.InvalidArgumentf("artifact set entry %d has no name", i)
		}
	}
	return &vocab, nil
}

// Builtin returns the embedded default vocabulary
func Builtin() *entities.Vocabulary {
	vocab, err := Parse(defaultDocument)
	if err != nil {
		panic(fmt.Sprintf("embedded vocabulary is invalid: %v", err))
	}
	return vocab
}
