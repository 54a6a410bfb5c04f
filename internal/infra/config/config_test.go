package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "player.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Music", cfg.Library.Dir)
	assert.Equal(t, ".mp3", cfg.Library.Extension)
	assert.Equal(t, 50*time.Millisecond, cfg.TickInterval())
	assert.Equal(t, "speaker", cfg.Audio.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
library:
  dir: /srv/music
playback:
  tick_interval_ms: 10
audio:
  driver: "null"
  settings:
    buffer_ms: 200
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/music", cfg.Library.Dir)
	assert.Equal(t, ".mp3", cfg.Library.Extension, "unset fields keep defaults")
	assert.Equal(t, 10*time.Millisecond, cfg.TickInterval())
	assert.Equal(t, "null", cfg.Audio.Driver)
	assert.Equal(t, 200, cfg.Audio.Settings["buffer_ms"])
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Music", cfg.Library.Dir)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "library: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv(EnvMusicDir, "Songs")
	t.Setenv(EnvAudioDriver, "null")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(writeConfig(t, "library:\n  dir: Music\n"))
	require.NoError(t, err)

	assert.Equal(t, "Songs", cfg.Library.Dir)
	assert.Equal(t, "null", cfg.Audio.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Library:  LibraryConfig{Dir: "Music", Extension: ".mp3"},
			Playback: PlaybackConfig{TickIntervalMs: 50},
			Audio:    AudioConfig{Driver: "speaker"},
			Log:      LogConfig{Level: "warn"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "extension without dot",
			mutate:  func(c *Config) { c.Library.Extension = "mp3" },
			wantErr: true,
			errMsg:  "Extension",
		},
		{
			name:    "missing dir",
			mutate:  func(c *Config) { c.Library.Dir = "" },
			wantErr: true,
			errMsg:  "Dir",
		},
		{
			name:    "tick too long",
			mutate:  func(c *Config) { c.Playback.TickIntervalMs = 5000 },
			wantErr: true,
			errMsg:  "TickIntervalMs",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Audio.Driver = "alsa" },
			wantErr: true,
			errMsg:  "Driver",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "trace" },
			wantErr: true,
			errMsg:  "Level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.wantErr {
				require.Error(t, err, "expected validation to fail")
				assert.Contains(t, err.Error(), tt.errMsg,
					"error message should mention the problematic field")
			} else {
				assert.NoError(t, err, "expected validation to pass")
			}
		})
	}
}
