package engine

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/jscore/runtime"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigFormats(t *testing.T) {
	want := runtime.Config{
		RandomSeed:          7,
		PrototypeChainLimit: 64,
		Locale:              "de",
		LogLevel:            "debug",
		Strict:              true,
	}

	yamlPath := writeConfig(t, "jscore.yaml", `
random_seed: 7
prototype_chain_limit: 64
locale: de
log_level: debug
strict: true
`)
	tomlPath := writeConfig(t, "jscore.toml", `
random_seed = 7
prototype_chain_limit = 64
locale = "de"
log_level = "debug"
strict = true
`)

	for _, path := range []string{yamlPath, tomlPath} {
		cfg, err := LoadConfig(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, cfg, path)
	}
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg, err := LoadConfig(writeConfig(t, "partial.yml", "locale: fr\n"))
	require.NoError(t, err)
	assert.Empty(t, logs.String())

	want := DefaultConfig()
	want.Locale = "fr"
	assert.Equal(t, want, cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "config.json", "{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")

	_, err = LoadConfig(writeConfig(t, "broken.toml", "locale = "))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.toml")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfiguredEngine(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "engine.yaml", "prototype_chain_limit: 8\nlog_level: error\n"))
	require.NoError(t, err)

	e, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, 8, e.Context().Config().PrototypeChainLimit)
	assert.Equal(t, "en", e.Context().Locale().String())
}
