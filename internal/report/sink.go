package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/amrreport-cli/internal/utils"
)

// TableSink persists named tables.
type TableSink interface {
	WriteTable(name string, t Table) error
}

// CSVDir writes each table as <Dir>/<name> in comma-separated form. The
// directory is created on first write.
type CSVDir struct {
	Dir string

	ready   bool
	written []string
}

// NewCSVDir returns a sink rooted at dir.
func NewCSVDir(dir string) *CSVDir { return &CSVDir{Dir: dir} }

// WriteTable implements TableSink.
func (d *CSVDir) WriteTable(name string, t Table) error {
	if !d.ready {
		if err := utils.EnsureDir(d.Dir); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		d.ready = true
	}
	data, err := EncodeCSV(t)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(d.Dir, name)
	if err := utils.SafeWriteFile(path, data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	d.written = append(d.written, path)
	return nil
}

// Written returns the paths written so far.
func (d *CSVDir) Written() []string {
	out := make([]string, len(d.written))
	copy(out, d.written)
	return out
}

// EncodeCSV serializes a table with its header and no index column.
func EncodeCSV(t Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MemorySink keeps tables in memory, keyed by name.
type MemorySink struct {
	Tables map[string]Table
	Order  []string
}

// WriteTable implements TableSink.
func (m *MemorySink) WriteTable(name string, t Table) error {
	if m.Tables == nil {
		m.Tables = map[string]Table{}
	}
	if _, ok := m.Tables[name]; !ok {
		m.Order = append(m.Order, name)
	}
	m.Tables[name] = t
	return nil
}
