package cmd

import (
	"fmt"

	"github.com/jsphweid/lyricmidi/note"
	"github.com/jsphweid/lyricmidi/pitch"
	"github.com/jsphweid/lyricmidi/segment"
	"github.com/spf13/cobra"
)

var segmentNotes bool

func init() {
	rootCmd.AddCommand(segmentCmd)

	flags := segmentCmd.Flags()
	flags.BoolVar(&segmentNotes, "notes", false, "cluster fractional MIDI notes instead of Hz")
	flags.Int("max-clusters", 6, "largest number of clusters to try")
	flags.Int("kernel", 8, "median filter width")

	v.BindPFlag("segment.max_clusters", flags.Lookup("max-clusters"))
	v.BindPFlag("segment.kernel_size", flags.Lookup("kernel"))
}

var segmentCmd = &cobra.Command{
	Use:   "segment <pitch.csv>",
	Short: "Clusters a pitch track into a few stable levels",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		track, err := pitch.ReadCSVFile(args[0])
		if err != nil {
			return err
		}

		series := track.Frequencies()
		if segmentNotes {
			for i, f := range series {
				if f > 0 {
					series[i] = note.HzToMidi(f)
				} else {
					series[i] = 0
				}
			}
		}

		res, err := segment.FindClusters(series, conf.SegmentOptions())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "clusters: %v (bic %.2f)\n", res.ClusterCount, res.BIC)
		for _, r := range segment.Runs(res.Labels) {
			fmt.Fprintf(out, "%8.2f %8.2f  %v\n", float64(r.From)*track.Step, float64(r.To)*track.Step, r.Label)
		}
		return nil
	},
}
