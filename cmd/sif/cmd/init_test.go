package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/sifdb/pkg/config"
)

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	configPath = path
	t.Cleanup(func() { configPath = "" })

	out, err := runCommand(t, "init", "--data-dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Config written")
	assert.True(t, config.ConfigExists(path))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.NotEqual(t, "auto", cfg.Security.ClientAPIKey)

	// A second init without --force leaves the config alone.
	out, err = runCommand(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}
