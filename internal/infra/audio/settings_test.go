package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]any
		want     Settings
		wantErr  bool
	}{
		{
			name:     "nil map uses defaults",
			settings: nil,
			want:     Settings{BufferMs: 100, SampleRate: 44100, ResampleQuality: 4},
		},
		{
			name: "explicit values",
			settings: map[string]any{
				"buffer_ms":        200,
				"sample_rate":      48000,
				"resample_quality": 2,
			},
			want: Settings{BufferMs: 200, SampleRate: 48000, ResampleQuality: 2},
		},
		{
			name:     "strings are weakly typed",
			settings: map[string]any{"sample_rate": "22050"},
			want:     Settings{BufferMs: 100, SampleRate: 22050, ResampleQuality: 4},
		},
		{
			name:     "buffer too small",
			settings: map[string]any{"buffer_ms": 1},
			wantErr:  true,
		},
		{
			name:     "quality out of range",
			settings: map[string]any{"resample_quality": 9},
			wantErr:  true,
		},
		{
			name:     "unknown key",
			settings: map[string]any{"volume": 3},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := DecodeSettings(tt.settings)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *s)
		})
	}
}

func TestSettings_BufferSize(t *testing.T) {
	s := Settings{BufferMs: 100, SampleRate: 44100}

	assert.Equal(t, 4410, s.BufferSize())
}

func TestOpen(t *testing.T) {
	t.Run("null driver", func(t *testing.T) {
		e, err := Open(DriverNull, nil)
		require.NoError(t, err)
		assert.IsType(t, &NullEngine{}, e)
		assert.NoError(t, e.Close())
	})

	t.Run("unsupported driver", func(t *testing.T) {
		_, err := Open("alsa", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported audio driver")
	})

	t.Run("invalid settings", func(t *testing.T) {
		_, err := Open(DriverNull, map[string]any{"buffer_ms": 5000})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid settings")
	})
}
