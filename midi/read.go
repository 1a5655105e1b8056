package midi

import (
	"github.com/jsphweid/lyricmidi/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Notes collects the note events of every track. Deltas are recomputed
// relative to the previous note event so that meta events in between do
// not show up as gaps. A lyric directly preceding a note-on is attached to
// it.
func Notes(s *smf.SMF) []model.MidiEvent {
	var res []model.MidiEvent
	for _, track := range s.Tracks {
		var absTicks, lastNoteTicks int
		var lyric string
		for _, evt := range track {
			absTicks += int(evt.Delta)
			var channel, key, velocity uint8
			var text string
			switch {
			case evt.Message.GetMetaLyric(&text):
				lyric = text
			case evt.Message.GetNoteOn(&channel, &key, &velocity):
				res = append(res, model.MidiEvent{
					Kind:       model.NoteOn,
					Note:       int(key),
					Velocity:   int(velocity),
					DeltaTicks: absTicks - lastNoteTicks,
					Word:       lyric,
				})
				lastNoteTicks = absTicks
				lyric = ""
			case evt.Message.GetNoteOff(&channel, &key, &velocity):
				res = append(res, model.MidiEvent{
					Kind:       model.NoteOff,
					Note:       int(key),
					Velocity:   int(velocity),
					DeltaTicks: absTicks - lastNoteTicks,
				})
				lastNoteTicks = absTicks
			}
		}
	}
	return res
}

// Tempo returns the first tempo found, or 0.
func Tempo(s *smf.SMF) float64 {
	for _, track := range s.Tracks {
		for _, evt := range track {
			var bpm float64
			if evt.Message.GetMetaTempo(&bpm) {
				return bpm
			}
		}
	}
	return 0
}
