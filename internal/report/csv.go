package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/statnotes/youthstat/internal/utils"
)

// WriteCSV writes the table's rows and columns exactly as computed: raw
// proportions and weight-sums, no percent formatting, no extra derived
// columns. Blank fields mark combinations that were unobserved.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"variable", "category"}
	for _, c := range t.Columns {
		header = append(header, c.Key)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range t.Rows {
		rec := []string{row.Variable, row.Label}
		for _, c := range t.Columns {
			v, ok := row.Values[c.Key]
			if !ok {
				rec = append(rec, "")
				continue
			}
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes one CSV file per section into dir, named by section ID.
func (r *Run) ExportCSV(dir string) ([]string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, err
	}
	var written []string
	for _, t := range r.Tables {
		var buf bytes.Buffer
		if err := t.WriteCSV(&buf); err != nil {
			return written, fmt.Errorf("section %s: %w", t.ID, err)
		}
		path := filepath.Join(dir, t.ID+".csv")
		if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
			return written, fmt.Errorf("section %s: %w", t.ID, err)
		}
		written = append(written, path)
	}
	return written, nil
}
