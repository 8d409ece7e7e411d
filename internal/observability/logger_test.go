package observability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/pixelbot/pixelbot/internal/config"
)

type memorySyncer struct {
	strings.Builder
}

func (m *memorySyncer) Sync() error { return nil }

func TestInitializeWritesToConsoleCore(t *testing.T) {
	t.Cleanup(ResetForTest)
	ResetForTest()

	var buf memorySyncer
	Initialize(config.LoggerConfig{Level: "debug", Format: "json"}, zapcore.Lock(&buf))

	log := GetLogger()
	require.NotNil(t, log)
	log.Info("window selected")
	log.Sync()

	out := buf.String()
	assert.Contains(t, out, "window selected")
	assert.Contains(t, out, `"level":"info"`)
}

func TestInitializeRepeatedCallsAreNoOps(t *testing.T) {
	t.Cleanup(ResetForTest)
	ResetForTest()

	var first, second memorySyncer
	Initialize(config.LoggerConfig{Level: "info"}, zapcore.Lock(&first))
	Initialize(config.LoggerConfig{Level: "info"}, zapcore.Lock(&second))

	GetLogger().Info("only once")
	GetLogger().Sync()

	assert.Contains(t, first.String(), "only once")
	assert.Empty(t, second.String())
}

func TestGetLoggerBeforeInitialize(t *testing.T) {
	t.Cleanup(ResetForTest)
	ResetForTest()

	// Must not panic and must swallow output.
	GetLogger().Info("dropped")
}

func TestBadLevelFallsBackToInfo(t *testing.T) {
	t.Cleanup(ResetForTest)
	ResetForTest()

	var buf memorySyncer
	Initialize(config.LoggerConfig{Level: "verbose", Format: "json"}, zapcore.Lock(&buf))

	GetLogger().Debug("hidden")
	GetLogger().Info("shown")
	GetLogger().Sync()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}
