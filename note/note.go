package note

import (
	"fmt"
	"math"

	"github.com/jsphweid/lyricmidi/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Silence is returned when a window holds no voiced sample.
const Silence = 0

func HzToMidi(hz float64) float64 {
	return 69 + 12*math.Log2(hz/440)
}

// Estimate reduces the pitch samples of one word to a single MIDI note by
// averaging the voiced frequencies weighted by their confidence.
func Estimate(freqs, confs []float64) (int, error) {
	if len(freqs) != len(confs) {
		return 0, fmt.Errorf("%w: got %v frequencies and %v confidences", ErrInvalidInput, len(freqs), len(confs))
	}

	var voiced, weights []float64
	for i, f := range freqs {
		if f <= 0 {
			continue
		}
		voiced = append(voiced, f)
		weights = append(weights, math.Max(confs[i], 0))
	}
	if len(voiced) == 0 {
		return Silence, nil
	}

	total := floats.Sum(weights)
	if total == 0 {
		// nothing to weight by, fall back to a plain mean
		weights = nil
	} else {
		floats.Scale(1/total, weights)
	}

	mean := stat.Mean(voiced, weights)
	return int(math.RoundToEven(HzToMidi(mean))), nil
}

func EstimateSamples(samples []model.PitchSample) (int, error) {
	freqs := make([]float64, len(samples))
	confs := make([]float64, len(samples))
	for i, s := range samples {
		freqs[i] = s.Frequency
		confs[i] = s.Confidence
	}
	return Estimate(freqs, confs)
}
