package microdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadOptions controls CSV decoding of the extract.
type LoadOptions struct {
	// Delimiter for CSV. If 0, auto-detects by file extension (.tsv = tab).
	Delimiter rune
	// WeightColumn overrides the column read as the design weight.
	WeightColumn string
	// MissingTokens are in-band sentinel strings treated as missing in
	// addition to the empty string. Census extracts use sentinel codes
	// inconsistently across variables, so these are per-run, not global
	// assumptions baked into the store.
	MissingTokens []string
	// MaxRows limits rows loaded; 0 means unlimited.
	MaxRows int
}

// DefaultLoadOptions returns the defaults for a decoded extract.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		WeightColumn:  ColWeight,
		MissingTokens: []string{"Not available"},
	}
}

// Load reads a decoded census extract into a Dataset. Missing required
// columns and malformed or non-positive weights abort the load: the input
// is assumed pre-cleaned, so either indicates an upstream schema violation
// rather than a condition worth recovering from.
func Load(path string, opt LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open extract: %w", err)
	}
	defer f.Close()
	return load(f, path, opt)
}

func load(f io.Reader, path string, opt LoadOptions) (*Dataset, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = ','
		if strings.HasSuffix(strings.ToLower(path), ".tsv") {
			delim = '\t'
		}
	}
	wcol := opt.WeightColumn
	if wcol == "" {
		wcol = ColWeight
	}

	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("extract %s is empty", path)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		cols[i] = name
		index[name] = i
	}
	for _, required := range []string{ColAgeGroup, wcol, ColLabourForce, ColAttendance} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("extract %s: required column %q not found", path, required)
		}
	}
	widx := index[wcol]

	missing := map[string]struct{}{}
	for _, tok := range opt.MissingTokens {
		missing[tok] = struct{}{}
	}

	ds := &Dataset{Columns: cols}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(ds.Records)+1, err)
		}
		if opt.MaxRows > 0 && len(ds.Records) >= opt.MaxRows {
			break
		}
		row := Record{values: make(map[string]string, len(cols))}
		for i, name := range cols {
			if i >= len(rec) {
				continue
			}
			v := strings.TrimSpace(rec[i])
			if _, isMissing := missing[v]; isMissing {
				v = ""
			}
			row.values[name] = v
		}
		wraw := row.values[cols[widx]]
		w, err := strconv.ParseFloat(wraw, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse weight %q: %w", len(ds.Records)+1, wraw, err)
		}
		if w <= 0 {
			return nil, fmt.Errorf("row %d: design weight must be positive, got %v", len(ds.Records)+1, w)
		}
		row.Weight = w
		ds.Records = append(ds.Records, row)
	}
	return ds, nil
}
