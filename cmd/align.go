package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/jsphweid/lyricmidi/external"
	"github.com/jsphweid/lyricmidi/pipeline"
	"github.com/jsphweid/lyricmidi/util"
	"github.com/spf13/cobra"
)

var alignReq pipeline.Request

func init() {
	rootCmd.AddCommand(alignCmd)

	flags := alignCmd.Flags()
	flags.StringVar(&alignReq.AudioPath, "audio", "", "source separated vocals (wav)")
	flags.StringVar(&alignReq.LyricsPath, "lyrics", "", "raw lyrics text file")
	flags.StringVar(&alignReq.WordsPath, "words", "", "optional word boundary file")
	flags.String("method", "MTL", "alignment model: Baseline, MTL, Baseline_BDR or MTL_BDR")
	flags.Bool("cuda", false, "run the models on a GPU")
	flags.String("python", "", "python interpreter (default: scripts venv, then python3)")
	flags.String("scripts", "./scripts", "directory holding align.py and pitch.py")
	alignCmd.MarkFlagRequired("audio")
	alignCmd.MarkFlagRequired("lyrics")

	v.BindPFlag("align.method", flags.Lookup("method"))
	v.BindPFlag("align.cuda", flags.Lookup("cuda"))
	v.BindPFlag("runner.python", flags.Lookup("python"))
	v.BindPFlag("runner.scripts_dir", flags.Lookup("scripts"))
}

var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Aligns lyrics to audio and writes a MIDI melody",
	Long: `Runs the lyrics aligner and the pitch detector on a vocal track, then
writes alignment.csv, pitch.csv, output.mid and manifest.yaml into a new
directory under --out-dir.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		workDir := filepath.Join(conf.OutDir, "tmp")
		if err := util.EnsureDir(workDir); err != nil {
			return err
		}

		runner := external.NewRunner(conf.Runner.Python, conf.Runner.ScriptsDir)
		detector := external.NewScriptPitchDetector(runner, workDir)
		detector.Capacity = conf.Pitch.Capacity
		detector.Viterbi = conf.Pitch.Viterbi

		p := pipeline.New(conf, external.NewScriptAligner(runner, workDir), detector, log)
		m, err := p.Run(cmd.Context(), alignReq)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %v notes for %v words to %v\n", m.Notes, m.Words, m.MIDI)
		if len(m.Skipped) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Skipped %v words past the end of the pitch data\n", len(m.Skipped))
		}
		return nil
	},
}
