// Package report defines the report sections, runs them against the
// derived dataset, and renders each result as a text table plus CSV and
// XLSX exports. The aggregation engine hands over raw weight-sums and
// proportions; all number formatting lives here.
package report

import (
	"time"

	"github.com/statnotes/youthstat/internal/labels"
	"github.com/statnotes/youthstat/internal/logger"
	"github.com/statnotes/youthstat/internal/microdata"
)

// Column kinds drive renderer formatting only; stored values stay raw.
const (
	KindWeight   = "weight"
	KindShare    = "share"
	KindCumShare = "cumshare"
)

// Column is one numeric output column of a rendered table.
type Column struct {
	Key    string
	Header string
	Kind   string
}

// TableRow is one category value. Values is keyed by Column.Key; a missing
// key renders blank (the combination was unobserved and absence is not
// meaningful for this table).
type TableRow struct {
	Variable string
	Label    string
	Values   map[string]float64
}

// Table is a section's rendered result: an ordered row sequence, each
// keyed by (variable, category) and carrying raw numeric columns.
type Table struct {
	ID      string
	Title   string
	Columns []Column
	Rows    []TableRow
}

// Empty reports whether the section matched no records.
func (t *Table) Empty() bool { return len(t.Rows) == 0 }

// multiVariable reports whether rows span more than one source variable,
// which makes renderers emit the variable as a grouping column.
func (t *Table) multiVariable() bool {
	if len(t.Rows) == 0 {
		return false
	}
	first := t.Rows[0].Variable
	for _, r := range t.Rows[1:] {
		if r.Variable != first {
			return true
		}
	}
	return false
}

// Context carries the immutable inputs every section reads: the derived
// dataset, the label table, and a logger for data-quality signals. It is
// passed explicitly rather than held in package state.
type Context struct {
	Data   *microdata.Dataset
	Labels *labels.Table
	Log    logger.Logger
}

// Run is one complete report execution.
type Run struct {
	ID          string
	GeneratedAt time.Time
	Source      string
	Tables      []*Table
	Warnings    []string
}
