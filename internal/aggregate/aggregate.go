// Package aggregate implements the weighted categorical aggregation engine:
// filter, reshape wide variables to long form, group, sum design weights,
// normalize within each (split x variable) scope, and pivot split values
// into columns. Every report section is one call into this package.
package aggregate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/statnotes/youthstat/internal/microdata"
)

// ErrZeroWeight is returned when a normalization scope has a non-positive
// weight-sum. Valid design weights are strictly positive, so this must
// never occur; raising beats emitting NaN into a displayed percentage.
var ErrZeroWeight = errors.New("aggregate: zero weight-sum in normalization scope")

// TotalKey is the cell key used when no split column is requested.
const TotalKey = "all"

// Variable declares one source column to aggregate, with the display name
// used to tag its rows in long form. Aggregating several variables in one
// request reshapes them into a long table where each (variable, value) pair
// is its own groupable row; each variable's shares normalize independently.
type Variable struct {
	Source string
	Name   string
}

// Request parameterizes one aggregation pass.
type Request struct {
	// Filter excludes non-matching records before aggregation. Nil keeps
	// every record.
	Filter func(*microdata.Record) bool

	// Variables lists the source columns to aggregate. Records missing a
	// variable's value are dropped from that variable's rows only.
	Variables []Variable

	// SplitBy names a column whose distinct values become separate output
	// cells per row (long-to-wide reshape). Empty means a single total cell.
	SplitBy string

	// FillZero fills unobserved (split, value) combinations with explicit
	// zero cells. Meaningful when the split is an ordered category set
	// where absence is itself a finding (e.g. age-band breakdowns).
	FillZero bool

	// Orders fixes the category display order per variable name (and for
	// the SplitBy column, keyed by its column name). Categories not listed
	// sort after listed ones; variables without an entry sort ascending by
	// raw value, which for zero-padded census codes is code order.
	Orders map[string][]string
}

// Cell is one (row, split) aggregate: the weight-sum and its share of the
// enclosing (split x variable) scope. Values are raw proportions in [0,1];
// formatting is entirely the renderer's concern.
type Cell struct {
	WeightSum float64
	Share     float64
}

// Row is one category value of one variable.
type Row struct {
	Variable string
	Value    string
	Cells    map[string]Cell
}

// Cell returns the cell for a split key, zero-valued when absent.
func (r *Row) Cell(split string) Cell { return r.Cells[split] }

// Result is an ordered aggregation output: rows keyed by (variable, value),
// with one cell per split value.
type Result struct {
	SplitValues []string
	Rows        []Row
}

// Empty reports whether the filtered set matched nothing.
func (r *Result) Empty() bool { return len(r.Rows) == 0 }

// Run executes one aggregation pass over the dataset. An empty filtered set
// yields an empty Result, not an error: report sections must tolerate zero
// matching rows. A zero-weight normalization denominator is fatal.
func Run(ds *microdata.Dataset, req Request) (*Result, error) {
	if len(req.Variables) == 0 {
		return nil, errors.New("aggregate: at least one variable required")
	}

	// groups[split][variable][value] = weight-sum. The long reshape is
	// implicit: each record contributes one observation per variable whose
	// value is present.
	groups := map[string]map[string]map[string]float64{}
	splitSeen := map[string]struct{}{}

	for i := range ds.Records {
		rec := &ds.Records[i]
		if req.Filter != nil && !req.Filter(rec) {
			continue
		}
		split := TotalKey
		if req.SplitBy != "" {
			v, ok := rec.Value(req.SplitBy)
			if !ok {
				continue
			}
			split = v
		}
		for _, va := range req.Variables {
			val, ok := rec.Value(va.Source)
			if !ok {
				continue
			}
			byVar := groups[split]
			if byVar == nil {
				byVar = map[string]map[string]float64{}
				groups[split] = byVar
				splitSeen[split] = struct{}{}
			}
			byVal := byVar[va.Name]
			if byVal == nil {
				byVal = map[string]float64{}
				byVar[va.Name] = byVal
			}
			byVal[val] += rec.Weight
		}
	}

	res := &Result{}
	if len(groups) == 0 {
		return res, nil
	}

	res.SplitValues = orderedKeys(splitSeen, req.Orders[req.SplitBy])

	// Collect the observed category values per variable across all splits
	// so zero-fill and row ordering are consistent.
	valuesByVar := map[string]map[string]struct{}{}
	for _, byVar := range groups {
		for name, byVal := range byVar {
			set := valuesByVar[name]
			if set == nil {
				set = map[string]struct{}{}
				valuesByVar[name] = set
			}
			for v := range byVal {
				set[v] = struct{}{}
			}
		}
	}

	for _, va := range req.Variables {
		set := valuesByVar[va.Name]
		if set == nil {
			continue
		}
		values := orderedKeys(set, req.Orders[va.Name])
		rows := make([]Row, len(values))
		for i, v := range values {
			rows[i] = Row{Variable: va.Name, Value: v, Cells: map[string]Cell{}}
		}
		for _, split := range res.SplitValues {
			byVal := groups[split][va.Name]
			if byVal == nil {
				if req.FillZero {
					for i := range rows {
						rows[i].Cells[split] = Cell{}
					}
				}
				continue
			}
			var denom float64
			for _, w := range byVal {
				denom += w
			}
			if denom <= 0 {
				return nil, fmt.Errorf("%w: variable %q, split %q", ErrZeroWeight, va.Name, split)
			}
			for i, v := range values {
				w, observed := byVal[v]
				if !observed && !req.FillZero {
					continue
				}
				rows[i].Cells[split] = Cell{WeightSum: w, Share: w / denom}
			}
		}
		res.Rows = append(res.Rows, rows...)
	}
	return res, nil
}

// CumulativeShare computes a running sum of the Share column for one split
// key, restricted to the marked rows, in row order. The running sum is
// renormalized within the marked subset so the final marked row reaches
// 1.0: the cumulative share answers "what fraction of the marked
// population sits at or below this band". The returned slices align with
// Result.Rows; ok is false for unmarked rows.
func (r *Result) CumulativeShare(split string, marked func(Row) bool) (cum []float64, ok []bool, err error) {
	cum = make([]float64, len(r.Rows))
	ok = make([]bool, len(r.Rows))

	var total float64
	for _, row := range r.Rows {
		if marked(row) {
			total += row.Cell(split).Share
		}
	}
	if total == 0 {
		// No marked rows with mass: nothing to accumulate.
		return cum, ok, nil
	}
	var running float64
	for i, row := range r.Rows {
		if !marked(row) {
			continue
		}
		running += row.Cell(split).Share
		cum[i] = running / total
		ok[i] = true
	}
	return cum, ok, nil
}

// orderedKeys sorts a set by the declared order first, then ascending for
// the remainder. Declared categories keep their declared positions even
// when unobserved combinations are involved elsewhere.
func orderedKeys(set map[string]struct{}, order []string) []string {
	rank := make(map[string]int, len(order))
	for i, v := range order {
		rank[v] = i
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, iOK := rank[out[i]]
		rj, jOK := rank[out[j]]
		switch {
		case iOK && jOK:
			return ri < rj
		case iOK:
			return true
		case jOK:
			return false
		default:
			return out[i] < out[j]
		}
	})
	return out
}
