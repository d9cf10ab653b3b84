package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/KirkDiggler/artifact-tracker/internal/errors"
	"github.com/KirkDiggler/artifact-tracker/internal/logging"
)

func TestNew(t *testing.T) {
	logger, err := logging.New("warn", false)
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	dev, err := logging.New("debug", true)
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := logging.New("chatty", false)

	assert.True(t, errors.IsInvalidArgument(err))
}
