package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/lyricmidi/midi"
	"github.com/jsphweid/lyricmidi/timing"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/smf"
)

var inspectNotesOnly bool

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectNotesOnly, "notes", false, "only list note events")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Lists the events of a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		return inspect(cmd.OutOrStdout(), s)
	},
}

func inspect(out io.Writer, s *smf.SMF) error {
	tpb, err := midi.TicksPerBeat(s)
	if err != nil {
		return err
	}
	bpm := midi.Tempo(s)
	if bpm == 0 {
		bpm = conf.MIDI.BPM
	}
	fmt.Fprintf(out, "tracks: %v, ticks per beat: %v, bpm: %.2f\n", len(s.Tracks), tpb, bpm)

	if inspectNotesOnly {
		for _, evt := range midi.Notes(s) {
			fmt.Fprintf(out, "%+6d %-8v %3d %q\n", evt.DeltaTicks, evt.Kind, evt.Note, evt.Word)
		}
		return nil
	}

	for i, track := range s.Tracks {
		fmt.Fprintf(out, "track %v\n", i)
		var absTicks int
		for _, evt := range track {
			absTicks += int(evt.Delta)
			fmt.Fprintf(out, "%8d %8.3fs  %v\n", absTicks, timing.TicksToDur(absTicks, bpm, tpb), evt.Message)
		}
	}
	return nil
}
