package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jsphweid/lyricmidi/builder"
	"gopkg.in/yaml.v3"
)

type SkippedWord struct {
	Index int     `yaml:"index"`
	Word  string  `yaml:"word"`
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

type Manifest struct {
	RunID        string        `yaml:"run_id"`
	GeneratedAt  time.Time     `yaml:"generated_at"`
	AudioPath    string        `yaml:"audio_path"`
	LyricsPath   string        `yaml:"lyrics_path"`
	WordsPath    string        `yaml:"words_path,omitempty"`
	Method       string        `yaml:"method"`
	BPM          float64       `yaml:"bpm"`
	TicksPerBeat int           `yaml:"ticks_per_beat"`
	Aggregation  string        `yaml:"aggregation"`
	Words        int           `yaml:"words"`
	Notes        int           `yaml:"notes"`
	Skipped      []SkippedWord `yaml:"skipped,omitempty"`
	AlignmentCSV string        `yaml:"alignment_csv"`
	PitchCSV     string        `yaml:"pitch_csv"`
	MIDI         string        `yaml:"midi"`
}

func skippedWords(res builder.Result) []SkippedWord {
	var out []SkippedWord
	for _, s := range res.Skipped {
		out = append(out, SkippedWord{Index: s.Index, Word: s.Span.Word, Start: s.Span.Start, End: s.Span.End})
	}
	return out
}

func writeManifest(path string, m *Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create manifest: %w", err)
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("could not write manifest: %w", err)
	}
	return enc.Close()
}

func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("could not parse manifest: %w", err)
	}
	return &m, nil
}

func runPaths(dir string) (alignPath, pitchPath, midiPath, manifestPath string) {
	return filepath.Join(dir, "alignment.csv"),
		filepath.Join(dir, "pitch.csv"),
		filepath.Join(dir, "output.mid"),
		filepath.Join(dir, "manifest.yaml")
}
