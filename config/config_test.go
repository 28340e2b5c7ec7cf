package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg := Load(t.TempDir())
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Nil(t, cfg.FailurePhrases)
	assert.False(t, cfg.Debug)
}

func TestLoadMalformedFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte("not = [valid"), 0o644))
	cfg := Load(dir)
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
}

func TestLoadParsesFields(t *testing.T) {
	dir := t.TempDir()
	data := `
backend_url = "http://forge.example:9000"
theme = "light"
failure_phrases = ["boom", "kaput"]
debug = true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(data), 0o644))

	cfg := Load(dir)
	assert.Equal(t, "http://forge.example:9000", cfg.BackendURL)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, []string{"boom", "kaput"}, cfg.FailurePhrases)
	assert.True(t, cfg.Debug)
}

func TestLoadFillsEmptyFields(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(`theme = "light"`), 0o644))
	cfg := Load(dir)
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL, "missing URL falls back to default")
	assert.Equal(t, "light", cfg.Theme)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	want := Config{
		BackendURL:     "http://localhost:1234",
		Theme:          "light",
		FailurePhrases: []string{"phrase one"},
		Debug:          true,
	}
	require.NoError(t, Save(dir, want))
	assert.Equal(t, want, Load(dir))
}
