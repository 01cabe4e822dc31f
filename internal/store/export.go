package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV streams a trajectory as CSV with a time column followed by
// one column per state entry.
func WriteCSV[S ~[]float64](w io.Writer, states []S, times []float64) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if len(states) == 0 {
		return nil
	}

	header := []string{"time"}
	for i := range states[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := make([]string, 0, len(states[i])+1)
		row = append(row, strconv.FormatFloat(times[i], 'f', 6, 64))
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return cw.Error()
}

type runExport struct {
	Meta   RunMetadata `json:"meta"`
	Times  []float64   `json:"times"`
	States [][]float64 `json:"states"`
}

// WriteJSON streams a run (metadata plus trajectory) as indented JSON.
func WriteJSON(w io.Writer, meta RunMetadata, states [][]float64, times []float64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runExport{Meta: meta, Times: times, States: states})
}
