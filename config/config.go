package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsphweid/lyricmidi/builder"
	"github.com/jsphweid/lyricmidi/constants"
	"github.com/jsphweid/lyricmidi/external"
	"github.com/jsphweid/lyricmidi/midi"
	"github.com/jsphweid/lyricmidi/segment"
	"github.com/spf13/viper"
)

var ErrInvalid = errors.New("invalid configuration")

type MIDI struct {
	BPM          float64 `mapstructure:"bpm"`
	TicksPerBeat int     `mapstructure:"ticks_per_beat"`
	Velocity     int     `mapstructure:"velocity"`
	Channel      int     `mapstructure:"channel"`
	Lyrics       bool    `mapstructure:"lyrics"`
	TrackName    string  `mapstructure:"track_name"`
}

type Build struct {
	Aggregation   string `mapstructure:"aggregation"`
	NegativeDelta string `mapstructure:"negative_delta"`
}

type Align struct {
	Method string `mapstructure:"method"`
	CUDA   bool   `mapstructure:"cuda"`
}

type Pitch struct {
	Capacity string `mapstructure:"capacity"`
	Viterbi  bool   `mapstructure:"viterbi"`
}

type Runner struct {
	Python     string `mapstructure:"python"`
	ScriptsDir string `mapstructure:"scripts_dir"`
}

type Segment struct {
	MaxClusters int   `mapstructure:"max_clusters"`
	KernelSize  int   `mapstructure:"kernel_size"`
	NInit       int   `mapstructure:"n_init"`
	Seed        int64 `mapstructure:"seed"`
}

type Serve struct {
	Addr string `mapstructure:"addr"`
}

type Config struct {
	MIDI     MIDI    `mapstructure:"midi"`
	Build    Build   `mapstructure:"build"`
	Align    Align   `mapstructure:"align"`
	Pitch    Pitch   `mapstructure:"pitch"`
	Runner   Runner  `mapstructure:"runner"`
	Segment  Segment `mapstructure:"segment"`
	Serve    Serve   `mapstructure:"serve"`
	OutDir   string  `mapstructure:"out_dir"`
	LogLevel string  `mapstructure:"log_level"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("midi.bpm", constants.DefaultBPM)
	v.SetDefault("midi.ticks_per_beat", constants.DefaultTicksPerBeat)
	v.SetDefault("midi.velocity", constants.DefaultVelocity)
	v.SetDefault("midi.channel", 0)
	v.SetDefault("midi.lyrics", true)
	v.SetDefault("midi.track_name", "")
	v.SetDefault("build.aggregation", "weighted")
	v.SetDefault("build.negative_delta", "clamp")
	v.SetDefault("align.method", string(external.MTL))
	v.SetDefault("align.cuda", false)
	v.SetDefault("pitch.capacity", "large")
	v.SetDefault("pitch.viterbi", true)
	v.SetDefault("runner.python", "")
	v.SetDefault("runner.scripts_dir", constants.DefaultScriptsDir)
	v.SetDefault("segment.max_clusters", 6)
	v.SetDefault("segment.kernel_size", 8)
	v.SetDefault("segment.n_init", 5)
	v.SetDefault("segment.seed", 0)
	v.SetDefault("serve.addr", ":8080")
	v.SetDefault("out_dir", constants.DefaultOutDir)
	v.SetDefault("log_level", "info")
}

// Load reads configFile if given, else ./lyricmidi.yaml when present, and
// overlays LYRICMIDI_* environment variables.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("lyricmidi")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("lyricmidi")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.MIDI.BPM <= 0:
		return fmt.Errorf("%w: bpm must be positive, got %v", ErrInvalid, c.MIDI.BPM)
	case c.MIDI.TicksPerBeat < 1 || c.MIDI.TicksPerBeat > constants.MaxTicksPerBeat:
		return fmt.Errorf("%w: ticks_per_beat %v out of range", ErrInvalid, c.MIDI.TicksPerBeat)
	case c.MIDI.Velocity < 1 || c.MIDI.Velocity > constants.MaxNote:
		return fmt.Errorf("%w: velocity %v out of range", ErrInvalid, c.MIDI.Velocity)
	case c.MIDI.Channel < 0 || c.MIDI.Channel > 15:
		return fmt.Errorf("%w: channel %v out of range", ErrInvalid, c.MIDI.Channel)
	case c.Segment.MaxClusters < 1:
		return fmt.Errorf("%w: max_clusters must be at least 1", ErrInvalid)
	}
	if _, err := builder.ParseAggregation(c.Build.Aggregation); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := builder.ParseNegativeDelta(c.Build.NegativeDelta); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := external.ParseMethod(c.Align.Method); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// BuilderOptions assumes Validate passed.
func (c *Config) BuilderOptions() builder.Options {
	agg, _ := builder.ParseAggregation(c.Build.Aggregation)
	neg, _ := builder.ParseNegativeDelta(c.Build.NegativeDelta)
	return builder.Options{
		BPM:           c.MIDI.BPM,
		TicksPerBeat:  c.MIDI.TicksPerBeat,
		Velocity:      c.MIDI.Velocity,
		Aggregation:   agg,
		NegativeDelta: neg,
	}
}

func (c *Config) MIDIOptions() midi.Options {
	return midi.Options{
		TicksPerBeat: c.MIDI.TicksPerBeat,
		BPM:          c.MIDI.BPM,
		Channel:      uint8(c.MIDI.Channel),
		Lyrics:       c.MIDI.Lyrics,
		TrackName:    c.MIDI.TrackName,
	}
}

func (c *Config) SegmentOptions() segment.Options {
	return segment.Options{
		MaxClusters: c.Segment.MaxClusters,
		KernelSize:  c.Segment.KernelSize,
		NInit:       c.Segment.NInit,
		Seed:        c.Segment.Seed,
	}
}
