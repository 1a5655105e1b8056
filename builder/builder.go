package builder

import (
	"fmt"
	"io"
	"math"

	"github.com/jsphweid/lyricmidi/constants"
	"github.com/jsphweid/lyricmidi/model"
	"github.com/jsphweid/lyricmidi/note"
	"github.com/jsphweid/lyricmidi/timing"
	"github.com/jsphweid/lyricmidi/util"
	"github.com/sirupsen/logrus"
)

// Aggregation picks which pitch samples inside a word decide its note.
type Aggregation int

const (
	// WeightedSlice uses every sample in the word's window.
	WeightedSlice Aggregation = iota
	// FirstSample uses only the first 10ms of the word.
	FirstSample
)

func ParseAggregation(s string) (Aggregation, error) {
	switch s {
	case "", "weighted":
		return WeightedSlice, nil
	case "first":
		return FirstSample, nil
	}
	return 0, fmt.Errorf("unknown aggregation %q", s)
}

func (a Aggregation) String() string {
	if a == FirstSample {
		return "first"
	}
	return "weighted"
}

// NegativeDelta decides what happens when a word starts before the
// previous one ended.
type NegativeDelta int

const (
	Clamp NegativeDelta = iota
	Fail
)

func ParseNegativeDelta(s string) (NegativeDelta, error) {
	switch s {
	case "", "clamp":
		return Clamp, nil
	case "error":
		return Fail, nil
	}
	return 0, fmt.Errorf("unknown negative delta policy %q", s)
}

type Options struct {
	BPM           float64
	TicksPerBeat  int
	Velocity      int
	Aggregation   Aggregation
	NegativeDelta NegativeDelta
	Log           logrus.FieldLogger
}

func DefaultOptions() Options {
	return Options{
		BPM:          constants.DefaultBPM,
		TicksPerBeat: constants.DefaultTicksPerBeat,
		Velocity:     constants.DefaultVelocity,
	}
}

type Skipped struct {
	Index int
	Span  model.WordSpan
}

type Result struct {
	Events      []model.MidiEvent
	Skipped     []Skipped
	CurrentTime float64
}

// Build walks spans in order and emits a note-on/note-off pair per word.
func Build(spans []model.WordSpan, track model.PitchTrack, opts Options) (Result, error) {
	if opts.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Log = l
	}
	if track.Step == 0 {
		track.Step = constants.SampleStep
	}

	res := Result{Events: make([]model.MidiEvent, 0, 2*len(spans))}
	for i, span := range spans {
		var err error
		res, err = step(res, i, span, track, opts)
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

// step folds one word into the accumulated result. A word whose window runs
// past the pitch data is recorded as skipped and leaves the clock untouched.
func step(acc Result, i int, span model.WordSpan, track model.PitchTrack, opts Options) (Result, error) {
	if !finite(span.Start) || !finite(span.End) || span.Start < 0 {
		return acc, fmt.Errorf("%w: %q at index %v has times %v..%v", ErrInvalidSpan, span.Word, i, span.Start, span.End)
	}
	if span.End < span.Start {
		return acc, fmt.Errorf("%w: %q at index %v ends before it starts (%v > %v)", ErrInvalidSpan, span.Word, i, span.Start, span.End)
	}

	startIdx := track.Index(span.Start)
	endIdx := track.Index(span.End)
	if endIdx > track.Len() || startIdx >= track.Len() {
		opts.Log.WithFields(logrus.Fields{
			"word":      span.Word,
			"end":       span.End,
			"pitch_len": track.Len(),
		}).Warn("word ends past pitch data, skipping")
		acc.Skipped = append(acc.Skipped, Skipped{Index: i, Span: span})
		return acc, nil
	}

	n, err := estimate(track, startIdx, endIdx, opts.Aggregation)
	if err != nil {
		return acc, fmt.Errorf("estimating note for %q: %w", span.Word, err)
	}
	n = util.Clamp(n, 0, constants.MaxNote)

	gap := timing.DurToTicks(span.Start-acc.CurrentTime, opts.BPM, opts.TicksPerBeat)
	if gap < 0 {
		if opts.NegativeDelta == Fail {
			return acc, fmt.Errorf("%w: %q starts at %v, previous word ended at %v", ErrNegativeDelta, span.Word, span.Start, acc.CurrentTime)
		}
		opts.Log.WithFields(logrus.Fields{
			"word":  span.Word,
			"start": span.Start,
			"ticks": gap,
		}).Warn("word overlaps previous word, clamping delta to zero")
		gap = 0
	}

	acc.Events = append(acc.Events,
		model.MidiEvent{
			Kind:       model.NoteOn,
			Note:       n,
			Velocity:   opts.Velocity,
			DeltaTicks: gap,
			Word:       span.Word,
		},
		model.MidiEvent{
			Kind:       model.NoteOff,
			Note:       n,
			Velocity:   opts.Velocity,
			DeltaTicks: timing.DurToTicks(span.Duration(), opts.BPM, opts.TicksPerBeat),
		},
	)
	acc.CurrentTime = span.End
	return acc, nil
}

func estimate(track model.PitchTrack, startIdx, endIdx int, agg Aggregation) (int, error) {
	// a word shorter than one sample still gets the sample it starts in
	if endIdx <= startIdx {
		endIdx = startIdx + 1
	}
	window := track.Slice(startIdx, endIdx)
	if agg == FirstSample && len(window) > 1 {
		window = window[:1]
	}
	return note.EstimateSamples(window)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
