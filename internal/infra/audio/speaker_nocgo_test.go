//go:build !cgo || nospeaker

package audio

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestOpen_SpeakerUnavailable(t *testing.T) {
	e, err := Open(DriverSpeaker, nil)

	assert.Nil(t, e)
	assert.True(t, errors.Is(err, ErrSpeakerUnavailable))
}
