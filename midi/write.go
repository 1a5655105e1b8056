package midi

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/lyricmidi/constants"
	"github.com/jsphweid/lyricmidi/model"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type Options struct {
	TicksPerBeat int
	BPM          float64
	Channel      uint8
	Lyrics       bool
	TrackName    string
}

func DefaultOptions() Options {
	return Options{
		TicksPerBeat: constants.DefaultTicksPerBeat,
		BPM:          constants.DefaultBPM,
		Lyrics:       true,
	}
}

// Encode puts events into a single track SMF. A tempo meta event at tick 0
// carries the bpm the deltas were computed with.
func Encode(events []model.MidiEvent, opts Options) (*smf.SMF, error) {
	if opts.TicksPerBeat < 1 || opts.TicksPerBeat > constants.MaxTicksPerBeat {
		return nil, fmt.Errorf("ticks per beat %v out of range", opts.TicksPerBeat)
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(opts.TicksPerBeat)

	var track smf.Track
	if opts.TrackName != "" {
		track.Add(0, smf.MetaTrackSequenceName(opts.TrackName))
	}
	if opts.BPM > 0 {
		track.Add(0, smf.MetaTempo(opts.BPM))
	}

	for i, evt := range events {
		if evt.DeltaTicks < 0 {
			return nil, fmt.Errorf("%w: event %v has delta %v", ErrNegativeDelta, i, evt.DeltaTicks)
		}
		if !inRange(evt.Note) || !inRange(evt.Velocity) {
			return nil, fmt.Errorf("%w: event %v note %v velocity %v", ErrNoteOutOfRange, i, evt.Note, evt.Velocity)
		}

		delta := uint32(evt.DeltaTicks)
		key, vel := uint8(evt.Note), uint8(evt.Velocity)
		switch evt.Kind {
		case model.NoteOn:
			if opts.Lyrics && evt.Word != "" {
				track.Add(delta, smf.MetaLyric(evt.Word))
				delta = 0
			}
			track.Add(delta, gomidi.NoteOn(opts.Channel, key, vel))
		case model.NoteOff:
			track.Add(delta, gomidi.NoteOffVelocity(opts.Channel, key, vel))
		default:
			return nil, fmt.Errorf("event %v has unknown kind %v", i, evt.Kind)
		}
	}
	track.Close(0)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("could not add track: %w", err)
	}
	return s, nil
}

func Write(w io.Writer, events []model.MidiEvent, opts Options) error {
	s, err := Encode(events, opts)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("could not write midi: %w", err)
	}
	return nil
}

func WriteFile(path string, events []model.MidiEvent, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %v: %w", path, err)
	}
	if err := Write(f, events, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func inRange(v int) bool {
	return v >= 0 && v <= constants.MaxNote
}
