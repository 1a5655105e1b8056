package model

type EventKind uint8

const (
	NoteOn EventKind = iota
	NoteOff
)

func (k EventKind) String() string {
	switch k {
	case NoteOn:
		return "note_on"
	case NoteOff:
		return "note_off"
	}
	return "unknown"
}

// MidiEvent is a note event whose DeltaTicks is relative to the previous
// event in the same sequence.
type MidiEvent struct {
	Kind       EventKind `json:"kind"`
	Note       int       `json:"note"`
	Velocity   int       `json:"velocity"`
	DeltaTicks int       `json:"delta_ticks"`

	// NOTE: only set on NoteOn, used for lyric meta events
	Word string `json:"word,omitempty"`
}
