// Package csvio reads and writes house samples and optimizer histories as CSV.
//
// Sample files:
//
//	size,price
//	120,700000000
//	85.5,520000000
//
// History files:
//
//	step,w,b,loss
//	0,0.2,0,0.64
//
// Files ending in .zst, .s2 or .lz4 are transparently compressed with
// Zstandard, S2 or LZ4 frames respectively.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/dataset"
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/optim"
)

// Common errors.
var (
	ErrBadHeader    = errors.New("unexpected CSV header")
	ErrUnknownCodec = errors.New("unknown compression codec")
	ErrBadStep      = errors.New("history steps out of order")
)

var (
	sampleHeader  = []string{"size", "price"}
	historyHeader = []string{"step", "w", "b", "loss"}
)

// ReadSamples parses a sample CSV. The header is matched case-insensitively.
func ReadSamples(r io.Reader) (dataset.Dataset, error) {
	records, err := readAll(r, sampleHeader)
	if err != nil {
		return nil, err
	}

	out := make(dataset.Dataset, 0, len(records))
	for i, rec := range records {
		vals, err := parseFloats(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		s := dataset.Sample{Size: vals[0], Price: vals[1]}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// WriteSamples writes d as a sample CSV.
func WriteSamples(w io.Writer, d dataset.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sampleHeader); err != nil {
		return err
	}
	for _, s := range d {
		if err := cw.Write([]string{formatFloat(s.Size), formatFloat(s.Price)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteHistory writes h as a history CSV, one row per iteration.
func WriteHistory(w io.Writer, h optim.History) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(historyHeader); err != nil {
		return err
	}
	for i, e := range h {
		row := []string{strconv.Itoa(i), formatFloat(e.W), formatFloat(e.B), formatFloat(e.Loss)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadHistory parses a history CSV written by WriteHistory.
func ReadHistory(r io.Reader) (optim.History, error) {
	records, err := readAll(r, historyHeader)
	if err != nil {
		return nil, err
	}

	out := make(optim.History, 0, len(records))
	for i, rec := range records {
		step, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: step: %w", i+2, err)
		}
		if step != i {
			return nil, fmt.Errorf("row %d: %w: got %d, want %d", i+2, ErrBadStep, step, i)
		}
		vals, err := parseFloats(rec[1:])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, optim.Entry{W: vals[0], B: vals[1], Loss: vals[2]})
	}
	return out, nil
}

// LoadSamples reads a sample file, decompressing by extension.
func LoadSamples(path string) (dataset.Dataset, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadSamples(f)
}

// SaveSamples writes a sample file, compressing by extension.
func SaveSamples(path string, d dataset.Dataset) error {
	return save(path, func(w io.Writer) error { return WriteSamples(w, d) })
}

// SaveHistory writes a history file, compressing by extension.
func SaveHistory(path string, h optim.History) error {
	return save(path, func(w io.Writer) error { return WriteHistory(w, h) })
}

func save(path string, write func(io.Writer) error) error {
	f, err := Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func readAll(r io.Reader, header []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrBadHeader)
	}

	for i, name := range header {
		if !strings.EqualFold(strings.TrimSpace(records[0][i]), name) {
			return nil, fmt.Errorf("%w: got %v, want %v", ErrBadHeader, records[0], header)
		}
	}
	return records[1:], nil
}

func parseFloats(rec []string) ([]float64, error) {
	out := make([]float64, len(rec))
	for i, field := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
