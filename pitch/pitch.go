package pitch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jsphweid/lyricmidi/constants"
	"github.com/jsphweid/lyricmidi/model"
)

var header = []string{"Time", "Frequency", "Confidence"}

// FromDetection builds a track from the parallel series a pitch detector
// returns. The step is taken from the first two timestamps.
func FromDetection(times, freqs, confs []float64) (model.PitchTrack, error) {
	if len(times) != len(freqs) || len(freqs) != len(confs) {
		return model.PitchTrack{}, fmt.Errorf("%w: %v times, %v frequencies, %v confidences", ErrLengthMismatch, len(times), len(freqs), len(confs))
	}

	track := model.PitchTrack{Step: constants.SampleStep}
	if len(times) > 1 && times[1] > times[0] {
		track.Step = times[1] - times[0]
	}
	track.Samples = make([]model.PitchSample, len(freqs))
	for i := range freqs {
		track.Samples[i] = model.PitchSample{Frequency: freqs[i], Confidence: confs[i]}
	}
	return track, nil
}

func WriteCSV(w io.Writer, track model.PitchTrack) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("could not write pitch header: %w", err)
	}
	for i, s := range track.Samples {
		row := []string{
			strconv.FormatFloat(float64(i)*track.Step, 'f', -1, 64),
			strconv.FormatFloat(s.Frequency, 'f', -1, 64),
			strconv.FormatFloat(s.Confidence, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("could not write pitch row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteCSVFile(path string, track model.PitchTrack) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %v: %w", path, err)
	}
	if err := WriteCSV(f, track); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV reads Time,Frequency,Confidence rows. The header is optional.
func ReadCSV(r io.Reader) (model.PitchTrack, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var times, freqs, confs []float64
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return model.PitchTrack{}, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		if line == 1 && len(row) > 0 && row[0] == header[0] {
			continue
		}
		if len(row) != 3 {
			return model.PitchTrack{}, fmt.Errorf("%w: line %v has %v columns", ErrMalformedRow, line, len(row))
		}

		var vals [3]float64
		for i := range vals {
			vals[i], err = strconv.ParseFloat(row[i], 64)
			if err != nil {
				return model.PitchTrack{}, fmt.Errorf("%w: line %v %v: %v", ErrMalformedRow, line, header[i], err)
			}
		}
		times = append(times, vals[0])
		freqs = append(freqs, vals[1])
		confs = append(confs, vals[2])
	}
	return FromDetection(times, freqs, confs)
}

func ReadCSVFile(path string) (model.PitchTrack, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.PitchTrack{}, fmt.Errorf("could not open %v: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}
