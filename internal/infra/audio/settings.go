package audio

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/gopxl/beep"
	"github.com/mitchellh/mapstructure"
)

// Settings holds driver tuning decoded from the free-form config map.
type Settings struct {
	BufferMs        int `yaml:"buffer_ms" mapstructure:"buffer_ms" default:"100" validate:"gte=10,lte=1000"`
	SampleRate      int `yaml:"sample_rate" mapstructure:"sample_rate" default:"44100" validate:"gte=8000,lte=192000"`
	ResampleQuality int `yaml:"resample_quality" mapstructure:"resample_quality" default:"4" validate:"gte=1,lte=6"`
}

// DecodeSettings decodes, defaults and validates driver settings.
func DecodeSettings(settings map[string]any) (*Settings, error) {
	var s Settings

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create decoder")
	}
	if err := decoder.Decode(settings); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}

	if err := defaults.Set(&s); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := validator.New().Struct(s); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}
	return &s, nil
}

// Rate returns the output sample rate.
func (s Settings) Rate() beep.SampleRate {
	return beep.SampleRate(s.SampleRate)
}

// BufferSize returns the speaker buffer length in samples.
func (s Settings) BufferSize() int {
	return s.Rate().N(time.Duration(s.BufferMs) * time.Millisecond)
}
