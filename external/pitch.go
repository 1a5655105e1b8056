package external

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/lyricmidi/constants"
	"github.com/jsphweid/lyricmidi/model"
	"github.com/jsphweid/lyricmidi/pitch"
)

// PitchDetector estimates the sung pitch every few milliseconds.
type PitchDetector interface {
	Detect(ctx context.Context, audioPath string) (model.PitchTrack, error)
}

// ScriptPitchDetector runs pitch.py, which writes a Time,Frequency,Confidence CSV.
type ScriptPitchDetector struct {
	runner   *Runner
	workDir  string
	Capacity string
	Viterbi  bool
}

func NewScriptPitchDetector(runner *Runner, workDir string) *ScriptPitchDetector {
	return &ScriptPitchDetector{runner: runner, workDir: workDir, Capacity: "large", Viterbi: true}
}

func (d *ScriptPitchDetector) Detect(ctx context.Context, audioPath string) (model.PitchTrack, error) {
	outPath := filepath.Join(d.workDir, "pitch-"+uuid.New().String()+".csv")
	args := []string{
		"--audio", audioPath,
		"--capacity", d.Capacity,
		"--out", outPath,
	}
	if d.Viterbi {
		args = append(args, "--viterbi")
	}

	res, err := d.runner.RunScript(ctx, constants.PitchScript, args...)
	if err != nil {
		return model.PitchTrack{}, newProcessError(constants.PitchScript, "pitch_detection", res, err)
	}
	defer os.Remove(outPath)

	track, err := pitch.ReadCSVFile(outPath)
	if err != nil {
		return model.PitchTrack{}, fmt.Errorf("read pitch results: %w", err)
	}
	return track, nil
}
