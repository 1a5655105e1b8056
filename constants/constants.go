package constants

// pitch detector emits one sample every 10ms
const SampleStep = 0.01

// aligner frames are 3 hops of 256 samples at 22.05kHz
const AlignResolution = 256.0 / 22050.0 * 3

const (
	DefaultBPM          = 120
	DefaultTicksPerBeat = 480
	DefaultVelocity     = 64
	MaxNote             = 127
	MaxTicksPerBeat     = 0x7FFF
)

const (
	AlignScript = "align.py"
	PitchScript = "pitch.py"
)

// overridable through LYRICMIDI_OUT_DIR and LYRICMIDI_RUNNER_SCRIPTS_DIR
const (
	DefaultOutDir     = "./out"
	DefaultScriptsDir = "./scripts"
)
