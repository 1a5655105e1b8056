package external

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/lyricmidi/alignment"
	"github.com/jsphweid/lyricmidi/constants"
	"github.com/jsphweid/lyricmidi/model"
)

type Method string

const (
	Baseline    Method = "Baseline"
	MTL         Method = "MTL"
	BaselineBDR Method = "Baseline_BDR"
	MTLBDR      Method = "MTL_BDR"
)

var Methods = []Method{Baseline, MTL, BaselineBDR, MTLBDR}

func ParseMethod(s string) (Method, error) {
	for _, m := range Methods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

type AlignRequest struct {
	AudioPath  string
	LyricsPath string
	// optional word boundary file
	WordsPath string
	Method    Method
	CUDA      bool
}

// Aligner places every lyric word on the audio's timeline.
type Aligner interface {
	Align(ctx context.Context, req AlignRequest) ([]model.WordSpan, error)
}

// alignOutput is what align.py writes: frame spans and the words they belong to.
type alignOutput struct {
	WordAlign [][2]float64 `json:"word_align"`
	Words     []string     `json:"words"`
}

// ScriptAligner runs align.py and converts its frame output to seconds.
type ScriptAligner struct {
	runner     *Runner
	workDir    string
	resolution float64
}

func NewScriptAligner(runner *Runner, workDir string) *ScriptAligner {
	return &ScriptAligner{runner: runner, workDir: workDir, resolution: constants.AlignResolution}
}

func (a *ScriptAligner) Align(ctx context.Context, req AlignRequest) ([]model.WordSpan, error) {
	outPath := filepath.Join(a.workDir, "align-"+uuid.New().String()+".json")
	args := []string{
		"--audio", req.AudioPath,
		"--lyrics", req.LyricsPath,
		"--method", string(req.Method),
		"--out", outPath,
	}
	if req.WordsPath != "" {
		args = append(args, "--words", req.WordsPath)
	}
	if req.CUDA {
		args = append(args, "--cuda")
	}

	res, err := a.runner.RunScript(ctx, constants.AlignScript, args...)
	if err != nil {
		return nil, newProcessError(constants.AlignScript, "alignment", res, err)
	}
	defer os.Remove(outPath)

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read alignment results: %w", err)
	}
	return decodeAlignment(data, a.resolution)
}

func decodeAlignment(data []byte, resolution float64) ([]model.WordSpan, error) {
	var out alignOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse alignment results: %w", err)
	}
	return alignment.FromFrames(out.WordAlign, out.Words, resolution)
}
