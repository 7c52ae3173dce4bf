package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/statnotes/youthstat/internal/labels"
	"github.com/statnotes/youthstat/internal/logger"
	"github.com/statnotes/youthstat/internal/microdata"
)

var fixtureRows = []string{
	"agegrp,weight,lfact,attsch,immstat,gender,indig,hcorened,lim_at,lico_at,mbm",
	// Youth
	"7,10,Employed - worked in reference week,Attended school,1,1,2,2,2,2,2",
	"8,20,Employed - worked in reference week,Did not attend school,2,2,2,2,2,2,2",
	"8,5,Unemployed - looked for work,Did not attend school,1,1,2,1,1,1,1",
	"9,15,Not in the labour force,Attended school,1,2,1,2,2,2,2",
	// Other working-age
	"10,30,Employed - worked in reference week,Did not attend school,1,1,2,2,2,2,2",
	"12,25,Not in the labour force,Did not attend school,2,2,2,1,1,2,1",
	"16,10,Unemployed - looked for work,Did not attend school,1,1,2,2,2,2,2",
	// Outside working age, must never appear in any section
	"3,99,Not available,Attended school,1,1,2,2,2,2,2",
}

func fixtureContext(t *testing.T) *Context {
	t.Helper()
	path := filepath.Join(t.TempDir(), "extract.csv")
	if err := os.WriteFile(path, []byte(strings.Join(fixtureRows, "\n")), 0o644); err != nil {
		t.Fatalf("write extract: %v", err)
	}
	ds, err := microdata.Load(path, microdata.DefaultLoadOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := microdata.Derive(ds, logger.Discard()); err != nil {
		t.Fatalf("Derive: %v", err)
	}
	return &Context{Data: ds, Labels: labels.Builtin(logger.Discard()), Log: logger.Discard()}
}

func TestExecuteAllSections(t *testing.T) {
	ctx := fixtureContext(t)
	run, err := Execute(ctx, Sections(), "extract.csv")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if run.ID == "" {
		t.Fatalf("missing run ID")
	}
	if len(run.Tables) != 7 {
		t.Fatalf("expected 7 tables, got %d", len(run.Tables))
	}
	for _, tab := range run.Tables {
		if tab.Empty() {
			t.Fatalf("section %s unexpectedly empty", tab.ID)
		}
	}
	if len(run.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", run.Warnings)
	}
}

func TestLabourForceDisplayOrder(t *testing.T) {
	ctx := fixtureContext(t)
	s, ok := SectionByID("labour-force")
	if !ok {
		t.Fatalf("section not registered")
	}
	tab, err := s.Build(ctx)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := make([]string, len(tab.Rows))
	for i, r := range tab.Rows {
		got[i] = r.Label
	}
	want := []string{"Employed", "Unemployed", "Not in the labour force"}
	if len(got) != len(want) {
		t.Fatalf("rows: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("display order: got %v, want %v", got, want)
		}
	}
	// Youth column comes before the non-youth column.
	if !strings.HasPrefix(tab.Columns[0].Header, "Youth (18 to 29 years)") {
		t.Fatalf("first column: %q", tab.Columns[0].Header)
	}
}

func TestNEETSectionShares(t *testing.T) {
	ctx := fixtureContext(t)
	s, _ := SectionByID("neet")
	tab, err := s.Build(ctx)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// Youth weights: Employed 30, NEET 5 (unemployed, not attending),
	// Not in labour force (attending) 15. Total 50.
	byLabel := map[string]float64{}
	for _, r := range tab.Rows {
		if v, ok := r.Values["share:"+microdata.YouthFlagYouth]; ok {
			byLabel[r.Label] = v
		}
	}
	if got := byLabel["Employed"]; got != 0.6 {
		t.Fatalf("youth employed share: got %v, want 0.6", got)
	}
	if got := byLabel["Not in employment, education or training (NEET)"]; got != 0.1 {
		t.Fatalf("youth NEET share: got %v, want 0.1", got)
	}
	// The section's bespoke label overrides the base table's variable name.
	if got := tab.Rows[0].Variable; got != "Labour force status including NEET" {
		t.Fatalf("variable display name: got %q", got)
	}
}

func TestAgeProfileCumulativeColumn(t *testing.T) {
	ctx := fixtureContext(t)
	s, _ := SectionByID("age-profile")
	tab, err := s.Build(ctx)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	last := tab.Columns[len(tab.Columns)-1]
	if last.Key != "cum_youth" || last.Kind != KindCumShare {
		t.Fatalf("cumulative column: %+v", last)
	}
	// Youth weights 10, 25, 15 of a 50 youth total.
	var lastCum float64
	seen := 0
	for _, r := range tab.Rows {
		if v, ok := r.Values["cum_youth"]; ok {
			if v < lastCum {
				t.Fatalf("cumulative share decreasing: %v after %v", v, lastCum)
			}
			lastCum = v
			seen++
		}
	}
	if seen != 3 {
		t.Fatalf("expected 3 youth bands with cumulative values, got %d", seen)
	}
	if lastCum != 1.0 {
		t.Fatalf("final cumulative share: got %v, want 1.0", lastCum)
	}
	// Non-youth bands carry no cumulative value.
	for _, r := range tab.Rows {
		if r.Label == "30 to 34 years" {
			if _, ok := r.Values["cum_youth"]; ok {
				t.Fatalf("non-youth band has cumulative value")
			}
		}
	}
}

func TestDemographicsGroupsVariables(t *testing.T) {
	ctx := fixtureContext(t)
	s, _ := SectionByID("demographics")
	tab, err := s.Build(ctx)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !tab.multiVariable() {
		t.Fatalf("expected multiple variables in one table")
	}
	vars := map[string]bool{}
	for _, r := range tab.Rows {
		vars[r.Variable] = true
	}
	for _, want := range []string{"Immigration status", "Gender", "Indigenous identity"} {
		if !vars[want] {
			t.Fatalf("missing variable %q in %v", want, vars)
		}
	}
	text := tab.Text()
	if !strings.Contains(text, "| Variable |") {
		t.Fatalf("grouped table should render a Variable column:\n%s", text)
	}
}

func TestEmptySectionRendersEmptyTable(t *testing.T) {
	// An extract with no working-age records: every section is empty but
	// the run still succeeds, with one warning per section.
	rows := []string{
		"agegrp,weight,lfact,attsch",
		"3,5,Not available,Attended school",
	}
	path := filepath.Join(t.TempDir(), "extract.csv")
	if err := os.WriteFile(path, []byte(strings.Join(rows, "\n")), 0o644); err != nil {
		t.Fatalf("write extract: %v", err)
	}
	ds, err := microdata.Load(path, microdata.DefaultLoadOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := microdata.Derive(ds, logger.Discard()); err != nil {
		t.Fatalf("Derive: %v", err)
	}
	ctx := &Context{Data: ds, Labels: labels.Builtin(logger.Discard()), Log: logger.Discard()}

	s, _ := SectionByID("labour-force")
	run, err := Execute(ctx, []Section{s}, "extract.csv")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(run.Warnings) != 1 {
		t.Fatalf("warnings: %v", run.Warnings)
	}
	if got := run.Tables[0].Text(); !strings.Contains(got, "(no matching records)") {
		t.Fatalf("empty table render:\n%s", got)
	}
}

func TestTextFormatsSharesAsPercent(t *testing.T) {
	ctx := fixtureContext(t)
	s, _ := SectionByID("labour-force")
	tab, err := s.Build(ctx)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	text := tab.Text()
	// Youth: Employed 30/50.
	if !strings.Contains(text, "60.0%") {
		t.Fatalf("expected formatted percentage in:\n%s", text)
	}
}

func TestWriteCSVMirrorsColumns(t *testing.T) {
	ctx := fixtureContext(t)
	s, _ := SectionByID("labour-force")
	tab, err := s.Build(ctx)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var buf bytes.Buffer
	if err := tab.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	joined := buf.String()
	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(recs) != len(tab.Rows)+1 {
		t.Fatalf("csv rows: got %d, want %d", len(recs), len(tab.Rows)+1)
	}
	wantCols := 2 + len(tab.Columns)
	for i, rec := range recs {
		if len(rec) != wantCols {
			t.Fatalf("csv row %d: %d fields, want %d", i, len(rec), wantCols)
		}
	}
	// Raw proportions, not formatted percentages.
	if strings.Contains(joined, "%") {
		t.Fatalf("csv must carry raw values:\n%s", joined)
	}
	if !strings.Contains(joined, "0.6") {
		t.Fatalf("expected raw share 0.6 in:\n%s", joined)
	}
}

func TestExportCSVWritesPerSection(t *testing.T) {
	ctx := fixtureContext(t)
	run, err := Execute(ctx, Sections(), "extract.csv")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	dir := filepath.Join(t.TempDir(), "out")
	written, err := run.ExportCSV(dir)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if len(written) != len(run.Tables) {
		t.Fatalf("wrote %d files, want %d", len(written), len(run.Tables))
	}
	for _, p := range written {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("missing export %s: %v", p, err)
		}
	}
}
