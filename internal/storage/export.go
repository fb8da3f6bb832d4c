package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/arrayviz/internal/array"
	"github.com/san-kum/arrayviz/internal/steps"
)

var csvHeader = []string{
	"step", "description", "array",
	"highlights", "compare", "swap", "found",
	"range_low", "range_high", "mid",
	"new_element", "updated_element", "removed_element",
}

type ExportData struct {
	Run   RunMetadata    `json:"run"`
	Steps steps.Sequence `json:"steps"`
}

func ExportJSON(w io.Writer, meta RunMetadata, seq steps.Sequence) error {
	meta.Steps = len(seq)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: meta, Steps: seq})
}

// ExportCSV writes one row per step. Index lists are space separated and
// absent annotations are empty cells.
func ExportCSV(w io.Writer, seq steps.Sequence) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for i, st := range seq {
		low, high := "", ""
		if st.Range != nil {
			low, high = strconv.Itoa(st.Range.Low), strconv.Itoa(st.Range.High)
		}
		row := []string{
			strconv.Itoa(i),
			st.Description,
			st.Array.String(),
			formatIndices(st.Highlights),
			formatIndices(st.Compare),
			formatIndices(st.Swap),
			formatIndices(st.Found),
			low, high,
			formatOptional(st.Mid),
			formatOptional(st.NewElement),
			formatOptional(st.UpdatedElement),
			formatOptional(st.RemovedElement),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ImportCSV reads a trace written by ExportCSV.
func ImportCSV(r io.Reader) (steps.Sequence, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return steps.Sequence{}, nil
	}

	seq := make(steps.Sequence, 0, len(records)-1)
	for n, rec := range records[1:] {
		st, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("steps.csv row %d: %w", n+1, err)
		}
		seq = append(seq, st)
	}
	return seq, nil
}

func parseRow(rec []string) (steps.Step, error) {
	a, err := array.Parse(rec[2])
	if err != nil {
		return steps.Step{}, err
	}
	st := steps.Step{Array: a, Description: rec[1]}

	lists := []*[]int{&st.Highlights, &st.Compare, &st.Swap, &st.Found}
	for i, dst := range lists {
		if *dst, err = parseIndices(rec[3+i]); err != nil {
			return steps.Step{}, err
		}
	}
	if st.Highlights == nil {
		st.Highlights = []int{}
	}

	if rec[7] != "" {
		low, err := strconv.Atoi(rec[7])
		if err != nil {
			return steps.Step{}, err
		}
		high, err := strconv.Atoi(rec[8])
		if err != nil {
			return steps.Step{}, err
		}
		st.Range = &steps.Range{Low: low, High: high}
	}

	opts := []**int{&st.Mid, &st.NewElement, &st.UpdatedElement, &st.RemovedElement}
	for i, dst := range opts {
		if *dst, err = parseOptional(rec[9+i]); err != nil {
			return steps.Step{}, err
		}
	}
	return st, nil
}

func formatIndices(idx []int) string {
	parts := make([]string, len(idx))
	for i, v := range idx {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

func parseIndices(s string) ([]int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, nil
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func formatOptional(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func parseOptional(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
