package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { Logger = zap.NewNop() })

	err := Init("debug")

	assert.NoError(t, err)
	assert.True(t, Logger.Core().Enabled(zapcore.DebugLevel))
}

func TestInit_InvalidLevel(t *testing.T) {
	before := Logger

	err := Init("loud")

	assert.Error(t, err)
	assert.Equal(t, before, Logger)
}
