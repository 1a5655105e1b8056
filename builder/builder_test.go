package builder

import (
	"bytes"
	"math"
	"testing"

	"github.com/jsphweid/lyricmidi/model"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flat(n int, freq, conf float64) model.PitchTrack {
	track := model.PitchTrack{Step: 0.01}
	for i := 0; i < n; i++ {
		track.Samples = append(track.Samples, model.PitchSample{Frequency: freq, Confidence: conf})
	}
	return track
}

func TestSingleWordEmitsPair(t *testing.T) {
	spans := []model.WordSpan{{Word: "Hello", Start: 0, End: 0.0132}}
	res, err := Build(spans, flat(12, 440, 0.9), DefaultOptions())
	require.NoError(t, err)

	assert := assert.New(t)
	require.Len(t, res.Events, 2)
	assert.Equal(model.MidiEvent{Kind: model.NoteOn, Note: 69, Velocity: 64, DeltaTicks: 0, Word: "Hello"}, res.Events[0])
	assert.Equal(model.MidiEvent{Kind: model.NoteOff, Note: 69, Velocity: 64, DeltaTicks: 12}, res.Events[1])
	assert.Equal(0.0132, res.CurrentTime)
	assert.Empty(res.Skipped)
}

func TestWordPastPitchDataIsSkipped(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	opts := DefaultOptions()
	opts.Log = log
	spans := []model.WordSpan{{Word: "late", Start: 0.05, End: 0.2}}
	res, err := Build(spans, flat(12, 440, 0.9), opts)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Empty(res.Events)
	assert.Equal(0.0, res.CurrentTime)
	require.Len(t, res.Skipped, 1)
	assert.Equal("late", res.Skipped[0].Span.Word)
	assert.Contains(buf.String(), "skipping")
}

func TestSkipDoesNotAdvanceClock(t *testing.T) {
	spans := []model.WordSpan{
		{Word: "a", Start: 0, End: 0.05},
		{Word: "b", Start: 0.05, End: 1.0},
		{Word: "c", Start: 0.06, End: 0.1},
	}
	res, err := Build(spans, flat(12, 440, 0.9), DefaultOptions())
	require.NoError(t, err)

	assert := assert.New(t)
	require.Len(t, res.Events, 4)
	// c is measured from the end of a, not b
	assert.Equal(9, res.Events[2].DeltaTicks)
	assert.Equal(0.1, res.CurrentTime)
	require.Len(t, res.Skipped, 1)
	assert.Equal(1, res.Skipped[0].Index)
}

func TestReferenceExample(t *testing.T) {
	spans := []model.WordSpan{
		{Word: "Hello", Start: 0.0, End: 0.0132},
		{Word: "world", Start: 0.0132, End: 0.0223},
		{Word: "I", Start: 0.0223, End: 0.0350},
		{Word: "am", Start: 0.0350, End: 0.0480},
		{Word: "very", Start: 0.0480, End: 0.0600},
		{Word: "happy", Start: 0.0600, End: 0.0720},
	}
	res, err := Build(spans, flat(12, 440, 0.9), DefaultOptions())
	require.NoError(t, err)

	assert := assert.New(t)
	require.Len(t, res.Events, 12)
	var total int
	for i, evt := range res.Events {
		assert.Equal(69, evt.Note)
		if i%2 == 0 {
			assert.Equal(model.NoteOn, evt.Kind)
			assert.Equal(spans[i/2].Word, evt.Word)
		} else {
			assert.Equal(model.NoteOff, evt.Kind)
		}
		assert.GreaterOrEqual(evt.DeltaTicks, 0)
		total += evt.DeltaTicks
	}
	// truncation per event can only lose ticks
	assert.LessOrEqual(total, 69)
	assert.Equal(0.0720, res.CurrentTime)
}

func TestOverlapIsClampedByDefault(t *testing.T) {
	spans := []model.WordSpan{
		{Word: "a", Start: 0, End: 0.08},
		{Word: "b", Start: 0.04, End: 0.1},
	}
	res, err := Build(spans, flat(20, 440, 0.9), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Events, 4)
	assert.Equal(t, 0, res.Events[2].DeltaTicks)
}

func TestOverlapCanFail(t *testing.T) {
	spans := []model.WordSpan{
		{Word: "a", Start: 0, End: 0.08},
		{Word: "b", Start: 0.04, End: 0.1},
	}
	opts := DefaultOptions()
	opts.NegativeDelta = Fail
	res, err := Build(spans, flat(20, 440, 0.9), opts)
	assert.ErrorIs(t, err, ErrNegativeDelta)
	assert.Len(t, res.Events, 2)
}

func TestReversedSpanIsInvalid(t *testing.T) {
	_, err := Build([]model.WordSpan{{Word: "x", Start: 0.05, End: 0.01}}, flat(20, 440, 0.9), DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidSpan)
}

func TestOutOfRangeTimesAreInvalid(t *testing.T) {
	cases := map[string]model.WordSpan{
		"negative start": {Word: "x", Start: -0.05, End: 0.02},
		"nan start":      {Word: "x", Start: math.NaN(), End: 0.02},
		"nan end":        {Word: "x", Start: 0.01, End: math.NaN()},
		"infinite end":   {Word: "x", Start: 0.01, End: math.Inf(1)},
	}
	for name, span := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := Build([]model.WordSpan{span}, flat(10, 440, 0.9), DefaultOptions())
			assert.ErrorIs(t, err, ErrInvalidSpan)
			assert.Empty(t, res.Events)
		})
	}
}

func TestAggregation(t *testing.T) {
	track := flat(10, 440, 0.5)
	for i := 1; i < 10; i++ {
		track.Samples[i] = model.PitchSample{Frequency: 880, Confidence: 0.9}
	}
	spans := []model.WordSpan{{Word: "la", Start: 0, End: 0.1}}

	cases := []struct {
		agg  Aggregation
		note int
	}{
		{FirstSample, 69},
		{WeightedSlice, 80},
	}
	for _, c := range cases {
		t.Run(c.agg.String(), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Aggregation = c.agg
			res, err := Build(spans, track, opts)
			require.NoError(t, err)
			assert.Equal(t, c.note, res.Events[0].Note)
		})
	}
}

func TestShortWordUsesItsStartSample(t *testing.T) {
	track := flat(5, 440, 0.9)
	track.Samples[1].Frequency = 880
	spans := []model.WordSpan{{Word: "t", Start: 0.012, End: 0.018}}
	res, err := Build(spans, track, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 81, res.Events[0].Note)
}

func TestSilentWordKeepsSentinelNote(t *testing.T) {
	spans := []model.WordSpan{{Word: "hm", Start: 0, End: 0.03}}
	res, err := Build(spans, flat(5, 0, 0.1), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Events[0].Note)
}

func TestParsers(t *testing.T) {
	assert := assert.New(t)
	a, err := ParseAggregation("first")
	assert.NoError(err)
	assert.Equal(FirstSample, a)
	_, err = ParseAggregation("median")
	assert.Error(err)

	p, err := ParseNegativeDelta("error")
	assert.NoError(err)
	assert.Equal(Fail, p)
	_, err = ParseNegativeDelta("wrap")
	assert.Error(err)
}
