package signalio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV parses the first row of r as comma separated samples. Blank fields
// are skipped; later rows are ignored.
func ReadCSV(r io.Reader) ([]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	row, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptySignal
	}

	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}

	out := make([]float64, 0, len(row))
	for i, field := range row {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("csv field %d: %w", i, err)
		}

		out = append(out, v)
	}

	if len(out) == 0 {
		return nil, ErrEmptySignal
	}

	return out, nil
}

// WriteCSV writes x as a single comma separated row.
func WriteCSV(w io.Writer, x []float64) error {
	row := make([]string, len(x))
	for i, v := range x {
		row[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(row); err != nil {
		return fmt.Errorf("signalio: %w", err)
	}

	cw.Flush()

	return cw.Error()
}

// ReadCSVColumn reads column col of every row after a header row, the layout
// of exported time,value traces. Rows too short to hold col are an error.
func ReadCSVColumn(r io.Reader, col int) ([]float64, error) {
	if col < 0 {
		return nil, fmt.Errorf("csv: invalid column %d", col)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptySignal
		}

		return nil, fmt.Errorf("csv header: %w", err)
	}

	var out []float64

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}

		if col >= len(row) {
			return nil, fmt.Errorf("csv line %d: no column %d", line, col)
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}

		out = append(out, v)
	}

	if len(out) == 0 {
		return nil, ErrEmptySignal
	}

	return out, nil
}
