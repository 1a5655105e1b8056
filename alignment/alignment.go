package alignment

import (
	"fmt"
	"strings"

	"github.com/jsphweid/lyricmidi/model"
	"golang.org/x/text/unicode/norm"
)

// FromFrames turns aligner output, given in frames, into word spans in
// seconds.
func FromFrames(frames [][2]float64, words []string, resolution float64) ([]model.WordSpan, error) {
	if len(frames) != len(words) {
		return nil, fmt.Errorf("%w: %v spans for %v words", ErrLengthMismatch, len(frames), len(words))
	}

	res := make([]model.WordSpan, len(frames))
	for i, f := range frames {
		res[i] = model.WordSpan{
			Word:  NormalizeWord(words[i]),
			Start: f[0] * resolution,
			End:   f[1] * resolution,
		}
	}
	return res, nil
}

func NormalizeWord(w string) string {
	return norm.NFC.String(strings.TrimSpace(w))
}
