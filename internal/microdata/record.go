// Package microdata holds the decoded census extract in memory: one record
// per surveyed individual, header-keyed categorical values, a positive
// survey design weight, and a derived-field layer computed once after load.
package microdata

// Column names expected in the extract. The loader fails fast when a
// required column is absent; everything else is carried through untouched
// and available to the aggregator by name.
const (
	ColAgeGroup    = "agegrp"
	ColWeight      = "weight"
	ColLabourForce = "lfact"
	ColAttendance  = "attsch"

	// Derived columns materialized by Derive.
	ColLabourForceNEET = "lfact_neet"
	ColYouthFlag       = "youth_flag"
)

// Age-group code boundaries. Codes 7-16 span the working-age population
// (18 to 64); 7-9 span youth (18 to 29).
const (
	ageCodeWorkingMin = 7
	ageCodeWorkingMax = 16
	ageCodeYouthMax   = 9
)

// Consolidated labour-force categories and the youth split values. These
// are fixed-order categoricals; display and grouping order is declared in
// the labels package and the report sections, never derived from the data.
const (
	LFSEmployed      = "Employed"
	LFSUnemployed    = "Unemployed"
	LFSNotInLabour   = "Not in labour force"
	LFSNEET          = "NEET"
	AttendanceDidNot = "Did not attend school"

	YouthFlagYouth    = "Youth"
	YouthFlagNonYouth = "Non-youth"
)

// Record is one surveyed individual. Values are raw categorical strings
// keyed by column name; Weight and the age flags are parsed/memoized by the
// loader and deriver and never mutated afterwards.
type Record struct {
	values map[string]string

	// Weight is the survey design weight. Population-level statistics are
	// weight-sums, never raw row counts.
	Weight float64

	// AgeGroup is the parsed ordinal age bucket code.
	AgeGroup   int
	WorkingAge bool
	Youth      bool
}

// NewRecord builds a record from explicit values, for synthetic datasets
// assembled in code rather than loaded from an extract. Derive still has
// to run before the record's flags are meaningful.
func NewRecord(values map[string]string, weight float64) Record {
	v := make(map[string]string, len(values))
	for k, val := range values {
		v[k] = val
	}
	return Record{values: v, Weight: weight}
}

// Value returns the record's value for a column. The second return is false
// when the column is absent or holds a missing-value token; records missing
// a field are excluded from aggregations keyed on that field.
func (r *Record) Value(col string) (string, bool) {
	v, ok := r.values[col]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (r *Record) set(col, v string) {
	r.values[col] = v
}

// Dataset is the immutable record store backing every report section.
type Dataset struct {
	Columns []string
	Records []Record

	derived bool
}

// Derived reports whether the derived-field layer has been computed.
func (ds *Dataset) Derived() bool { return ds.derived }

// HasColumn reports whether the extract carries the named column.
func (ds *Dataset) HasColumn(name string) bool {
	for _, c := range ds.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// TotalWeight sums the design weights across all records.
func (ds *Dataset) TotalWeight() float64 {
	var sum float64
	for i := range ds.Records {
		sum += ds.Records[i].Weight
	}
	return sum
}
