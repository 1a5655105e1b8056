package cmd

import (
	"github.com/jsphweid/lyricmidi/config"
	"github.com/jsphweid/lyricmidi/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	conf    *config.Config
	log     *logrus.Logger
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "lyricmidi",
	Short: "Turns sung lyrics into a MIDI melody",
	Long: `lyricmidi aligns lyrics to a vocal recording, detects the sung pitch and
writes one MIDI note per word.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		conf, err = config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		log = logging.New(conf.LogLevel, cmd.ErrOrStderr())
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./lyricmidi.yaml)")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.Float64("bpm", 120, "tempo used to convert seconds to ticks")
	flags.Int("ticks-per-beat", 480, "MIDI resolution")
	flags.String("aggregation", "weighted", "pitch samples deciding a word's note: weighted or first")
	flags.String("out-dir", "./out", "directory for generated files")

	v.BindPFlag("log_level", flags.Lookup("log-level"))
	v.BindPFlag("midi.bpm", flags.Lookup("bpm"))
	v.BindPFlag("midi.ticks_per_beat", flags.Lookup("ticks-per-beat"))
	v.BindPFlag("build.aggregation", flags.Lookup("aggregation"))
	v.BindPFlag("out_dir", flags.Lookup("out-dir"))
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
