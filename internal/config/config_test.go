package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Run from an empty directory so no stray pixelbot.yaml is found.
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.8, cfg.Threshold)
	assert.Equal(t, 90, cfg.EventDelayMs)
	assert.Equal(t, 3.0, cfg.CaptureFrequency)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pixelbot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"threshold: 0.92\nevent_delay_ms: 40\nlogger:\n  level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.92, cfg.Threshold)
	assert.Equal(t, 40, cfg.EventDelayMs)
	assert.Equal(t, "debug", cfg.Logger.Level)
	// Unset keys keep their defaults.
	assert.Equal(t, 3.0, cfg.CaptureFrequency)
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()

	badThreshold := filepath.Join(dir, "a.yaml")
	require.NoError(t, os.WriteFile(badThreshold, []byte("threshold: 1.3\n"), 0o644))
	_, err := Load(badThreshold)
	assert.Error(t, err)

	badFreq := filepath.Join(dir, "b.yaml")
	require.NoError(t, os.WriteFile(badFreq, []byte("capture_frequency: 0\n"), 0o644))
	_, err = Load(badFreq)
	assert.Error(t, err)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
