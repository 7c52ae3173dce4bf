package report

import (
	"fmt"
	"strconv"

	"github.com/statnotes/youthstat/internal/aggregate"
	"github.com/statnotes/youthstat/internal/labels"
	"github.com/statnotes/youthstat/internal/microdata"
)

// Section is one independent read-only query against the derived dataset.
type Section struct {
	ID    string
	Title string
	Build func(ctx *Context) (*Table, error)
}

// Fixed category orders. Labour-force status and its NEET variant are
// ordinal by convention, never alphabetical; age codes are numeric strings
// so their order must be declared too.
var (
	lfsOrder = []string{
		microdata.LFSEmployed,
		microdata.LFSUnemployed,
		microdata.LFSNotInLabour,
	}
	neetOrder = []string{
		microdata.LFSEmployed,
		microdata.LFSUnemployed,
		microdata.LFSNotInLabour,
		microdata.LFSNEET,
	}
	youthOrder = []string{
		microdata.YouthFlagYouth,
		microdata.YouthFlagNonYouth,
	}
	ageOrder = []string{
		"1", "2", "3", "4", "5", "6", "7", "8",
		"9", "10", "11", "12", "13", "14", "15", "16",
	}
	youthAgeOrder = []string{"7", "8", "9"}
)

func workingAge(r *microdata.Record) bool { return r.WorkingAge }

// Sections returns the static report registry in render order.
func Sections() []Section {
	return []Section{
		ageProfileSection(),
		labourForceSection(),
		neetSection(),
		demographicsSection(),
		lowIncomeSection(),
		housingSection(),
		attendanceSection(),
	}
}

// SectionByID looks up a single registered section.
func SectionByID(id string) (Section, bool) {
	for _, s := range Sections() {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// ageProfileSection: weighted age-group distribution of the working-age
// population with a cumulative-share column over the youth bands. The
// cumulative scan is restricted to youth rows and renormalized within
// them, so the last youth band reaches 1.0 of the youth total.
func ageProfileSection() Section {
	return Section{
		ID:    "age-profile",
		Title: "Working-age population by age group",
		Build: func(ctx *Context) (*Table, error) {
			req := aggregate.Request{
				Filter:    workingAge,
				Variables: []aggregate.Variable{{Source: microdata.ColAgeGroup, Name: microdata.ColAgeGroup}},
				Orders:    map[string][]string{microdata.ColAgeGroup: ageOrder},
			}
			res, err := aggregate.Run(ctx.Data, req)
			if err != nil {
				return nil, err
			}
			t := tableFromResult(ctx, "age-profile", "Working-age population by age group", req, res)
			if res.Empty() {
				return t, nil
			}

			cum, ok, err := res.CumulativeShare(aggregate.TotalKey, func(row aggregate.Row) bool {
				code, err := strconv.Atoi(row.Value)
				return err == nil && code >= 7 && code <= 9
			})
			if err != nil {
				return nil, err
			}
			t.Columns = append(t.Columns, Column{
				Key:    "cum_youth",
				Header: "Cumulative share of youth",
				Kind:   KindCumShare,
			})
			for i := range t.Rows {
				if ok[i] {
					t.Rows[i].Values["cum_youth"] = cum[i]
				}
			}
			return t, nil
		},
	}
}

func labourForceSection() Section {
	return splitShareSection(
		"labour-force",
		"Labour force status, youth versus other working-age adults",
		aggregate.Request{
			Filter:    workingAge,
			Variables: []aggregate.Variable{{Source: microdata.ColLabourForce, Name: microdata.ColLabourForce}},
			SplitBy:   microdata.ColYouthFlag,
			Orders: map[string][]string{
				microdata.ColLabourForce: lfsOrder,
				microdata.ColYouthFlag:   youthOrder,
			},
		},
		nil,
	)
}

func neetSection() Section {
	return splitShareSection(
		"neet",
		"Labour force status with NEET, youth versus other working-age adults",
		aggregate.Request{
			Filter:    workingAge,
			Variables: []aggregate.Variable{{Source: microdata.ColLabourForceNEET, Name: microdata.ColLabourForceNEET}},
			SplitBy:   microdata.ColYouthFlag,
			Orders: map[string][]string{
				microdata.ColLabourForceNEET: neetOrder,
				microdata.ColYouthFlag:       youthOrder,
			},
		},
		// Bespoke display name for the derived variable in this section.
		map[string]labels.VariableLabels{
			microdata.ColLabourForceNEET: {Name: "Labour force status including NEET"},
		},
	)
}

// demographicsSection aggregates three unrelated variables in one long
// pass; each variable's shares normalize independently per youth split.
func demographicsSection() Section {
	return splitShareSection(
		"demographics",
		"Selected characteristics, youth versus other working-age adults",
		aggregate.Request{
			Filter: workingAge,
			Variables: []aggregate.Variable{
				{Source: "immstat", Name: "immstat"},
				{Source: "gender", Name: "gender"},
				{Source: "indig", Name: "indig"},
			},
			SplitBy: microdata.ColYouthFlag,
			Orders:  map[string][]string{microdata.ColYouthFlag: youthOrder},
		},
		nil,
	)
}

func lowIncomeSection() Section {
	return splitShareSection(
		"low-income",
		"Low-income measures, youth versus other working-age adults",
		aggregate.Request{
			Filter: workingAge,
			Variables: []aggregate.Variable{
				{Source: "lim_at", Name: "lim_at"},
				{Source: "lico_at", Name: "lico_at"},
				{Source: "mbm", Name: "mbm"},
			},
			SplitBy: microdata.ColYouthFlag,
			Orders:  map[string][]string{microdata.ColYouthFlag: youthOrder},
		},
		nil,
	)
}

func housingSection() Section {
	return splitShareSection(
		"housing",
		"Core housing need, youth versus other working-age adults",
		aggregate.Request{
			Filter:    workingAge,
			Variables: []aggregate.Variable{{Source: "hcorened", Name: "hcorened"}},
			SplitBy:   microdata.ColYouthFlag,
			Orders:    map[string][]string{microdata.ColYouthFlag: youthOrder},
		},
		nil,
	)
}

// attendanceSection splits by youth age band. The bands are ordered
// categories where an unobserved combination is itself a finding, so
// absent cells fill with explicit zeros.
func attendanceSection() Section {
	return splitShareSection(
		"attendance",
		"School attendance by youth age band",
		aggregate.Request{
			Filter:    func(r *microdata.Record) bool { return r.Youth },
			Variables: []aggregate.Variable{{Source: microdata.ColAttendance, Name: microdata.ColAttendance}},
			SplitBy:   microdata.ColAgeGroup,
			FillZero:  true,
			Orders:    map[string][]string{microdata.ColAgeGroup: youthAgeOrder},
		},
		nil,
	)
}

// splitShareSection wraps the common pattern: run the request, relabel
// (with any bespoke per-section label overrides layered over the base
// table), and emit one weighted-count and one share column per split value.
func splitShareSection(id, title string, req aggregate.Request, overrides map[string]labels.VariableLabels) Section {
	return Section{
		ID:    id,
		Title: title,
		Build: func(ctx *Context) (*Table, error) {
			res, err := aggregate.Run(ctx.Data, req)
			if err != nil {
				return nil, fmt.Errorf("section %s: %w", id, err)
			}
			if overrides != nil {
				scoped := *ctx
				scoped.Labels = ctx.Labels.WithOverrides(overrides)
				ctx = &scoped
			}
			return tableFromResult(ctx, id, title, req, res), nil
		},
	}
}

// tableFromResult joins display labels onto an aggregation result and
// reshapes it into renderer form: per split value, a weighted-count column
// and a share column.
func tableFromResult(ctx *Context, id, title string, req aggregate.Request, res *aggregate.Result) *Table {
	t := &Table{ID: id, Title: title}
	for _, split := range res.SplitValues {
		header := ""
		if req.SplitBy != "" {
			header = ctx.Labels.Value(req.SplitBy, split) + " — "
		}
		t.Columns = append(t.Columns,
			Column{Key: "wt:" + split, Header: header + "Weighted count", Kind: KindWeight},
			Column{Key: "share:" + split, Header: header + "Share", Kind: KindShare},
		)
	}
	for _, row := range res.Rows {
		tr := TableRow{
			Variable: ctx.Labels.Variable(row.Variable),
			Label:    ctx.Labels.Value(row.Variable, row.Value),
			Values:   map[string]float64{},
		}
		for _, split := range res.SplitValues {
			if cell, ok := row.Cells[split]; ok {
				tr.Values["wt:"+split] = cell.WeightSum
				tr.Values["share:"+split] = cell.Share
			}
		}
		t.Rows = append(t.Rows, tr)
	}
	return t
}
