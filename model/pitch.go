package model

type PitchSample struct {
	Frequency  float64 `json:"frequency"`
	Confidence float64 `json:"confidence"`
}

// PitchTrack is a pitch series sampled at a fixed step, starting at time 0.
type PitchTrack struct {
	Step    float64       `json:"step"`
	Samples []PitchSample `json:"samples"`
}

func (p PitchTrack) Len() int {
	return len(p.Samples)
}

// Index maps a time in seconds to a sample index, truncating toward zero.
func (p PitchTrack) Index(seconds float64) int {
	return int(seconds / p.Step)
}

// Slice returns the samples in [from, to), clipped to the track.
func (p PitchTrack) Slice(from, to int) []PitchSample {
	from = max(from, 0)
	to = min(to, len(p.Samples))
	if from >= to {
		return nil
	}
	return p.Samples[from:to]
}

func (p PitchTrack) Frequencies() []float64 {
	res := make([]float64, len(p.Samples))
	for i, s := range p.Samples {
		res[i] = s.Frequency
	}
	return res
}
