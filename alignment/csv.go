package alignment

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jsphweid/lyricmidi/model"
)

// WriteCSV writes one start,end,word row per span, without a header.
func WriteCSV(w io.Writer, spans []model.WordSpan) error {
	cw := csv.NewWriter(w)
	for _, s := range spans {
		row := []string{formatFloat(s.Start), formatFloat(s.End), s.Word}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("could not write alignment row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteCSVFile(path string, spans []model.WordSpan) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %v: %w", path, err)
	}
	if err := WriteCSV(f, spans); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ReadCSV(r io.Reader) ([]model.WordSpan, error) {
	var res []model.WordSpan
	err := eachRow(r, func(line int, start, end float64, row []string) error {
		if len(row) < 3 {
			return fmt.Errorf("%w: line %v has no word", ErrMalformedRow, line)
		}
		res = append(res, model.WordSpan{Word: NormalizeWord(row[2]), Start: start, End: end})
		return nil
	})
	return res, err
}

func ReadCSVFile(path string) ([]model.WordSpan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %v: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// Differences returns end-start for the first row, then each row's end
// minus the previous row's end.
func Differences(r io.Reader) ([]float64, error) {
	var deltas []float64
	var prev float64
	first := true
	err := eachRow(r, func(_ int, start, end float64, _ []string) error {
		if first {
			deltas = append(deltas, end-start)
			first = false
		} else {
			deltas = append(deltas, end-prev)
		}
		prev = end
		return nil
	})
	return deltas, err
}

func DifferencesFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %v: %w", path, err)
	}
	defer f.Close()
	return Differences(f)
}

func eachRow(r io.Reader, fn func(line int, start, end float64, row []string) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		if len(row) < 2 {
			return fmt.Errorf("%w: line %v has %v columns", ErrMalformedRow, line, len(row))
		}
		start, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return fmt.Errorf("%w: line %v start: %v", ErrMalformedRow, line, err)
		}
		end, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return fmt.Errorf("%w: line %v end: %v", ErrMalformedRow, line, err)
		}
		if err := fn(line, start, end, row); err != nil {
			return err
		}
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
