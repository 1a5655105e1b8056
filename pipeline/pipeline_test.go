package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/lyricmidi/alignment"
	"github.com/jsphweid/lyricmidi/config"
	"github.com/jsphweid/lyricmidi/external"
	"github.com/jsphweid/lyricmidi/logging"
	"github.com/jsphweid/lyricmidi/midi"
	"github.com/jsphweid/lyricmidi/model"
	"github.com/jsphweid/lyricmidi/pitch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAligner struct {
	spans []model.WordSpan
	err   error
	got   external.AlignRequest
}

func (f *fakeAligner) Align(_ context.Context, req external.AlignRequest) ([]model.WordSpan, error) {
	f.got = req
	return f.spans, f.err
}

type fakeDetector struct {
	track model.PitchTrack
	err   error
}

func (f *fakeDetector) Detect(context.Context, string) (model.PitchTrack, error) {
	return f.track, f.err
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		MIDI:    config.MIDI{BPM: 120, TicksPerBeat: 480, Velocity: 64, Lyrics: true},
		Build:   config.Build{Aggregation: "weighted", NegativeDelta: "clamp"},
		Align:   config.Align{Method: "MTL"},
		Segment: config.Segment{MaxClusters: 6},
		OutDir:  t.TempDir(),
	}
}

func a440(n int) model.PitchTrack {
	track := model.PitchTrack{Step: 0.01}
	for i := 0; i < n; i++ {
		track.Samples = append(track.Samples, model.PitchSample{Frequency: 440, Confidence: 0.9})
	}
	return track
}

func TestRunWritesAllOutputs(t *testing.T) {
	spans := []model.WordSpan{
		{Word: "hello", Start: 0, End: 0.5},
		{Word: "world", Start: 0.5, End: 1.0},
		{Word: "gone", Start: 1.0, End: 9.0},
	}
	aligner := &fakeAligner{spans: spans}
	p := New(testConfig(t), aligner, &fakeDetector{track: a440(200)}, logging.Discard())

	m, err := p.Run(context.Background(), Request{AudioPath: "vocals.wav", LyricsPath: "lyrics.txt"})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(external.MTL, aligner.got.Method)
	assert.Equal(3, m.Words)
	assert.Equal(2, m.Notes)
	require.Len(t, m.Skipped, 1)
	assert.Equal("gone", m.Skipped[0].Word)

	gotSpans, err := alignment.ReadCSVFile(m.AlignmentCSV)
	require.NoError(t, err)
	assert.Equal(spans, gotSpans)

	track, err := pitch.ReadCSVFile(m.PitchCSV)
	require.NoError(t, err)
	assert.Equal(200, track.Len())

	s, err := midi.ReadMidiFile(m.MIDI)
	require.NoError(t, err)
	notes := midi.Notes(s)
	require.Len(t, notes, 4)
	assert.Equal(480, notes[1].DeltaTicks)
	assert.Equal("world", notes[2].Word)

	read, err := ReadManifest(filepath.Join(filepath.Dir(m.MIDI), "manifest.yaml"))
	require.NoError(t, err)
	assert.Equal(m.RunID, read.RunID)
	assert.Equal(m.Skipped, read.Skipped)
}

func TestRunPropagatesCollaboratorErrors(t *testing.T) {
	boom := errors.New("boom")

	p := New(testConfig(t), &fakeAligner{err: boom}, &fakeDetector{}, logging.Discard())
	_, err := p.Run(context.Background(), Request{})
	assert.ErrorIs(t, err, boom)

	p = New(testConfig(t), &fakeAligner{}, &fakeDetector{err: boom}, logging.Discard())
	_, err = p.Run(context.Background(), Request{})
	assert.ErrorIs(t, err, boom)
}

func TestFailedRunLeavesNoDirectory(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, &fakeAligner{}, &fakeDetector{err: errors.New("boom")}, logging.Discard())
	_, err := p.Run(context.Background(), Request{})
	require.Error(t, err)

	cfg.Align.Method = "CTC"
	p = New(cfg, &fakeAligner{}, &fakeDetector{}, logging.Discard())
	_, err = p.Run(context.Background(), Request{})
	assert.ErrorIs(t, err, external.ErrUnknownMethod)

	entries, err := os.ReadDir(cfg.OutDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConvertWritesMidi(t *testing.T) {
	var buf bytes.Buffer
	spans := []model.WordSpan{{Word: "la", Start: 0.25, End: 0.5}}
	res, err := Convert(spans, a440(100), testConfig(t), logging.Discard(), &buf)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(res.Events, 2)
	assert.Equal(240, res.Events[0].DeltaTicks)
	assert.Equal("MThd", buf.String()[:4])
}
