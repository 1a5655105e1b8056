package model

// WordSpan is one lyric word with the time interval, in seconds, the aligner
// attributed to it.
type WordSpan struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (w WordSpan) Duration() float64 {
	return w.End - w.Start
}
