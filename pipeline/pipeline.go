package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/lyricmidi/alignment"
	"github.com/jsphweid/lyricmidi/builder"
	"github.com/jsphweid/lyricmidi/config"
	"github.com/jsphweid/lyricmidi/external"
	"github.com/jsphweid/lyricmidi/midi"
	"github.com/jsphweid/lyricmidi/model"
	"github.com/jsphweid/lyricmidi/pitch"
	"github.com/jsphweid/lyricmidi/util"
	"github.com/sirupsen/logrus"
)

type Request struct {
	AudioPath  string
	LyricsPath string
	WordsPath  string
}

type Pipeline struct {
	cfg      *config.Config
	aligner  external.Aligner
	detector external.PitchDetector
	log      logrus.FieldLogger
}

func New(cfg *config.Config, aligner external.Aligner, detector external.PitchDetector, log logrus.FieldLogger) *Pipeline {
	return &Pipeline{cfg: cfg, aligner: aligner, detector: detector, log: log}
}

// Run aligns the lyrics, detects pitch and writes the MIDI file plus the
// intermediate CSVs into a fresh directory under the configured out dir.
func (p *Pipeline) Run(ctx context.Context, req Request) (m *Manifest, err error) {
	method, err := external.ParseMethod(p.cfg.Align.Method)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	dir := filepath.Join(p.cfg.OutDir, runID)
	if err := util.EnsureDir(dir); err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(dir)
		}
	}()
	log := p.log.WithField("run", runID)
	alignPath, pitchPath, midiPath, manifestPath := runPaths(dir)

	log.WithField("method", method).Info("aligning lyrics")
	spans, err := p.aligner.Align(ctx, external.AlignRequest{
		AudioPath:  req.AudioPath,
		LyricsPath: req.LyricsPath,
		WordsPath:  req.WordsPath,
		Method:     method,
		CUDA:       p.cfg.Align.CUDA,
	})
	if err != nil {
		return nil, fmt.Errorf("alignment: %w", err)
	}
	if err := alignment.WriteCSVFile(alignPath, spans); err != nil {
		return nil, err
	}
	log.WithField("words", len(spans)).Info("lyrics alignment completed")

	track, err := p.detector.Detect(ctx, req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("pitch detection: %w", err)
	}
	if err := pitch.WriteCSVFile(pitchPath, track); err != nil {
		return nil, err
	}
	log.WithField("samples", track.Len()).Info("pitch detection completed")

	res, err := Convert(spans, track, p.cfg, log, nil)
	if err != nil {
		return nil, err
	}
	if err := midi.WriteFile(midiPath, res.Events, p.cfg.MIDIOptions()); err != nil {
		return nil, err
	}

	m = &Manifest{
		RunID:        runID,
		GeneratedAt:  time.Now(),
		AudioPath:    req.AudioPath,
		LyricsPath:   req.LyricsPath,
		WordsPath:    req.WordsPath,
		Method:       string(method),
		BPM:          p.cfg.MIDI.BPM,
		TicksPerBeat: p.cfg.MIDI.TicksPerBeat,
		Aggregation:  p.cfg.Build.Aggregation,
		Words:        len(spans),
		Notes:        len(res.Events) / 2,
		Skipped:      skippedWords(res),
		AlignmentCSV: alignPath,
		PitchCSV:     pitchPath,
		MIDI:         midiPath,
	}
	if err := writeManifest(manifestPath, m); err != nil {
		return nil, err
	}
	log.WithField("midi", midiPath).Info("done")
	return m, nil
}

// Convert builds the note events for spans and, when w is not nil, writes
// them as a MIDI file to w.
func Convert(spans []model.WordSpan, track model.PitchTrack, cfg *config.Config, log logrus.FieldLogger, w io.Writer) (builder.Result, error) {
	opts := cfg.BuilderOptions()
	opts.Log = log
	res, err := builder.Build(spans, track, opts)
	if err != nil {
		return res, fmt.Errorf("building events: %w", err)
	}
	if w != nil {
		if err := midi.Write(w, res.Events, cfg.MIDIOptions()); err != nil {
			return res, err
		}
	}
	return res, nil
}
