package resfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SampleName derives the sample identifier from a result file path by
// stripping the directory and the given suffix.
func SampleName(path, suffix string) string {
	return strings.TrimSuffix(filepath.Base(path), suffix)
}

// ReadFile parses one result file, tagging every record with sample.
func ReadFile(path, sample string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open result file: %w", err)
	}
	defer f.Close()
	return Read(f, path, sample)
}

// Read parses tab-separated .res rows from r. Lines starting with '#' are
// comments. source is only used in error messages.
func Read(r io.Reader, source, sample string) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	var out []Record
	for {
		row, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &ParseError{File: source, Line: pe.Line, Msg: "malformed row", Err: pe.Err}
			}
			return nil, fmt.Errorf("read %s: %w", source, err)
		}
		line, _ := cr.FieldPos(0)
		if len(row) != NumFields {
			return nil, &ParseError{
				File: source,
				Line: line,
				Msg:  fmt.Sprintf("expected %d fields, got %d", NumFields, len(row)),
			}
		}
		rec, err := decodeRow(row, sample)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.File = source
				pe.Line = line
			}
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// decodeRow maps a validated-length row onto a Record following Schema.
func decodeRow(row []string, sample string) (Record, error) {
	var nums [11]float64
	var tlen int
	for i, col := range Schema {
		v := strings.TrimSpace(row[i])
		switch col.Kind {
		case KindInt:
			n, err := strconv.Atoi(v)
			if err != nil {
				return Record{}, &ParseError{Column: col.Name, Msg: fmt.Sprintf("invalid %s %q", col.Kind, v), Err: err}
			}
			tlen = n
		case KindFloat:
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return Record{}, &ParseError{Column: col.Name, Msg: fmt.Sprintf("invalid %s %q", col.Kind, v), Err: err}
			}
			nums[i] = x
		}
	}
	depth := nums[8]
	if math.IsNaN(depth) || depth < 0 {
		return Record{}, &ParseError{Column: "Depth", Msg: fmt.Sprintf("depth must be a non-negative number, got %v", depth)}
	}
	return Record{
		Template:         strings.TrimSpace(row[0]),
		Score:            nums[1],
		Expected:         nums[2],
		TemplateLength:   tlen,
		TemplateIdentity: nums[4],
		TemplateCoverage: nums[5],
		QueryIdentity:    nums[6],
		QueryCoverage:    nums[7],
		Depth:            depth,
		QValue:           nums[9],
		PValue:           nums[10],
		Sample:           sample,
	}, nil
}
