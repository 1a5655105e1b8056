package model

type ConvertRequestBody struct {
	BPM          float64       `json:"bpm"`
	TicksPerBeat int           `json:"ticks_per_beat"`
	Aggregation  string        `json:"aggregation"`
	Spans        []WordSpan    `json:"spans"`
	Pitch        []PitchSample `json:"pitch"`
}

type SegmentRequestBody struct {
	Series      []float64 `json:"series"`
	MaxClusters int       `json:"max_clusters"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
