package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"icecream-parlor/internal/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, logger.ParseLevel("DEBUG"))
	assert.Equal(t, zap.WarnLevel, logger.ParseLevel("warning"))
	assert.Equal(t, zap.ErrorLevel, logger.ParseLevel(" error "))
	assert.Equal(t, zap.InfoLevel, logger.ParseLevel(""))
	assert.Equal(t, zap.InfoLevel, logger.ParseLevel("verbose"))
}

func TestNew(t *testing.T) {
	log, err := logger.New("warn", "icecream-parlor")
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zap.InfoLevel))
	assert.True(t, log.Core().Enabled(zap.WarnLevel))
}
