package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipbridge/internal/config"
	"go.klb.dev/clipbridge/internal/pathconv"
)

func TestResolveSharedDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"/home/me/proj", filepath.Join("/home/me/proj", "sharedclaude")},
		{"/home/me/proj/", filepath.Join("/home/me/proj", "sharedclaude")},
		{"/home/me/proj/sharedclaude", "/home/me/proj/sharedclaude"},
		{"/home/me/proj/sharedclaude/", "/home/me/proj/sharedclaude"},
		{"/home/me/mysharedclaude", filepath.Join("/home/me/mysharedclaude", "sharedclaude")},
		{"sharedclaude", "sharedclaude"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, config.ResolveSharedDir(tt.in), tt.in)
	}
}

func TestWithBaseDir_Absolute(t *testing.T) {
	t.Parallel()

	cfg, err := config.Default().WithBaseDir("relative/dir")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.SharedDir))
	assert.Equal(t, "sharedclaude", filepath.Base(cfg.SharedDir))
	assert.Equal(t, "relative/dir", cfg.BaseDir)
}

func TestDefault_Valid(t *testing.T) {
	t.Parallel()

	cfg, err := config.Default().WithBaseDir(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5*time.Minute, cfg.Lifetime)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.Equal(t, 150*time.Millisecond, cfg.PasteDelay)
	assert.Equal(t, 10*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, pathconv.StyleNative, cfg.PathOptions().Style)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base, err := config.Default().WithBaseDir(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"no shared dir", func(c *config.Config) { c.SharedDir = "" }},
		{"lifetime not longer than interval", func(c *config.Config) { c.Lifetime = c.SweepInterval }},
		{"zero interval", func(c *config.Config) { c.SweepInterval = 0 }},
		{"negative paste delay", func(c *config.Config) { c.PasteDelay = -time.Second }},
		{"zero poll", func(c *config.Config) { c.PollInterval = 0 }},
		{"no hotkeys", func(c *config.Config) { c.HotkeyShort, c.HotkeyFull = "", "" }},
		{"bad style", func(c *config.Config) { c.PathStyle = "dos" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}
