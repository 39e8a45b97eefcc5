package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Analysis.Deep)
	assert.True(t, cfg.Analysis.UnusedMembers)
	assert.True(t, cfg.Analysis.Cycles)
	assert.True(t, cfg.Analysis.Parallel)
	assert.Equal(t, 0.50, cfg.Analysis.MinConfidence)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "searchdeadcode.yaml")
	content := `
analysis:
  deep: false
  min_confidence: 0.75
entry_points:
  retain:
    - "MainActivity"
output:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Analysis.Deep)
	assert.Equal(t, 0.75, cfg.Analysis.MinConfidence)
	assert.Equal(t, []string{"MainActivity"}, cfg.EntryPoints.Retain)
	assert.Equal(t, "json", cfg.Output.Format)
	// Untouched keys keep their defaults.
	assert.True(t, cfg.Analysis.Cycles)
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "searchdeadcode.toml")
	content := `
[analysis]
parallel = false
workers = 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Analysis.Parallel)
	assert.Equal(t, 2, cfg.Analysis.Workers)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/searchdeadcode.yaml")
	assert.Error(t, err)
}

func TestShouldExclude(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.ShouldExclude(filepath.Join("app", "build", "gen.kt")))
	assert.True(t, cfg.ShouldExclude("Model.generated.kt"))
	assert.False(t, cfg.ShouldExclude(filepath.Join("app", "src", "Main.kt")))
}
