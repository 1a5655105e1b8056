package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceClipsToTrack(t *testing.T) {
	track := PitchTrack{Step: 0.01, Samples: make([]PitchSample, 5)}

	assert := assert.New(t)
	assert.Len(track.Slice(1, 3), 2)
	assert.Len(track.Slice(-4, 2), 2)
	assert.Len(track.Slice(3, 99), 2)
	assert.Empty(track.Slice(4, 2))
	assert.Empty(track.Slice(-9, -1))
}
