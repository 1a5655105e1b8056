package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jsphweid/lyricmidi/alignment"
	"github.com/jsphweid/lyricmidi/pipeline"
	"github.com/jsphweid/lyricmidi/pitch"
	"github.com/spf13/cobra"
)

var (
	convertAlignment string
	convertPitch     string
	convertOut       string
)

func init() {
	rootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	flags.StringVar(&convertAlignment, "alignment", "", "start,end,word CSV")
	flags.StringVar(&convertPitch, "pitch", "", "Time,Frequency,Confidence CSV")
	flags.StringVar(&convertOut, "out", "", "MIDI file to write (default <out-dir>/output.mid)")
	flags.Bool("lyrics", true, "embed each word as a lyric meta event")
	flags.String("negative-delta", "clamp", "overlapping words: clamp or error")
	convertCmd.MarkFlagRequired("alignment")
	convertCmd.MarkFlagRequired("pitch")

	v.BindPFlag("midi.lyrics", flags.Lookup("lyrics"))
	v.BindPFlag("build.negative_delta", flags.Lookup("negative-delta"))
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Converts an existing alignment and pitch CSV into MIDI",
	RunE: func(cmd *cobra.Command, args []string) error {
		spans, err := alignment.ReadCSVFile(convertAlignment)
		if err != nil {
			return err
		}
		track, err := pitch.ReadCSVFile(convertPitch)
		if err != nil {
			return err
		}

		out := convertOut
		if out == "" {
			if err := os.MkdirAll(conf.OutDir, 0o755); err != nil {
				return err
			}
			out = filepath.Join(conf.OutDir, "output.mid")
		}
		var buf bytes.Buffer
		res, err := pipeline.Convert(spans, track, conf, log, &buf)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("could not write %v: %w", out, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %v notes to %v (%v skipped)\n", len(res.Events)/2, out, len(res.Skipped))
		return nil
	},
}
