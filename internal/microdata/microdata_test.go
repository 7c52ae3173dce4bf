package microdata

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/statnotes/youthstat/internal/logger"
)

var extractRows = []string{
	"agegrp,weight,lfact,attsch,immstat",
	"8,2.0,Employed - worked in reference week,Attended school,1",
	"8,3.0,Unemployed - looked for work,Did not attend school,2",
	"10,5.0,Not in the labour force,Did not attend school,1",
	"3,1.5,Not available,Not available,Not available",
	"16,4.0,Employed - absent in reference week,Did not attend school,2",
}

func writeExtract(t *testing.T, rows []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "extract.csv")
	if err := os.WriteFile(path, []byte(strings.Join(rows, "\n")), 0o644); err != nil {
		t.Fatalf("write extract: %v", err)
	}
	return path
}

func loadDerived(t *testing.T, rows []string) *Dataset {
	t.Helper()
	ds, err := Load(writeExtract(t, rows), DefaultLoadOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := Derive(ds, logger.Discard()); err != nil {
		t.Fatalf("Derive: %v", err)
	}
	return ds
}

func TestLoadAndDerive(t *testing.T) {
	ds := loadDerived(t, extractRows)
	if len(ds.Records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(ds.Records))
	}
	if got := ds.TotalWeight(); got != 15.5 {
		t.Fatalf("total weight: got %v, want 15.5", got)
	}
	if !ds.HasColumn(ColLabourForceNEET) || !ds.HasColumn(ColYouthFlag) {
		t.Fatalf("derived columns not materialized: %v", ds.Columns)
	}

	r := &ds.Records[0]
	if r.AgeGroup != 8 || !r.Youth || !r.WorkingAge {
		t.Fatalf("record 0 flags: age=%d youth=%v working=%v", r.AgeGroup, r.Youth, r.WorkingAge)
	}
	if v, _ := r.Value(ColLabourForce); v != LFSEmployed {
		t.Fatalf("record 0 lfs: got %q", v)
	}
	if v, _ := r.Value(ColYouthFlag); v != YouthFlagYouth {
		t.Fatalf("record 0 youth flag: got %q", v)
	}

	// "Not available" tokens become missing values.
	if _, ok := ds.Records[3].Value("immstat"); ok {
		t.Fatalf("sentinel token should be missing")
	}
}

func TestNEETReclassification(t *testing.T) {
	cases := []struct {
		lfact  string
		attsch string
		want   string
	}{
		{"Unemployed - looked for work", "Did not attend school", LFSNEET},
		{"Not in the labour force", "Did not attend school", LFSNEET},
		{"Unemployed - looked for work", "Attended school", LFSUnemployed},
		{"Not in the labour force", "Attended school", LFSNotInLabour},
		{"Employed - worked in reference week", "Did not attend school", LFSEmployed},
		{"Employed - worked in reference week", "Attended school", LFSEmployed},
	}
	for _, tc := range cases {
		rows := []string{
			"agegrp,weight,lfact,attsch",
			"8,1.0," + tc.lfact + "," + tc.attsch,
		}
		ds := loadDerived(t, rows)
		got, ok := ds.Records[0].Value(ColLabourForceNEET)
		if !ok || got != tc.want {
			t.Fatalf("lfact=%q attsch=%q: got %q, want %q", tc.lfact, tc.attsch, got, tc.want)
		}
	}
}

func TestYouthImpliesWorkingAge(t *testing.T) {
	for code := 1; code <= 16; code++ {
		rows := []string{
			"agegrp,weight,lfact,attsch",
			strings.Join([]string{strconv.Itoa(code), "1.0", "Employed", "Attended school"}, ","),
		}
		ds := loadDerived(t, rows)
		r := &ds.Records[0]
		if r.Youth && !r.WorkingAge {
			t.Fatalf("code %d: youth without working-age", code)
		}
		wantYouth := code >= 7 && code <= 9
		wantWorking := code >= 7 && code <= 16
		if r.Youth != wantYouth || r.WorkingAge != wantWorking {
			t.Fatalf("code %d: youth=%v working=%v", code, r.Youth, r.WorkingAge)
		}
	}
}

func TestDeriveRejectsBadAgeCode(t *testing.T) {
	rows := []string{
		"agegrp,weight,lfact,attsch",
		"young,1.0,Employed,Attended school",
	}
	ds, err := Load(writeExtract(t, rows), DefaultLoadOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := Derive(ds, logger.Discard()); err == nil {
		t.Fatalf("expected error for unparseable age code")
	}
}

func TestLoadRejectsMissingRequiredColumn(t *testing.T) {
	rows := []string{
		"agegrp,weight,lfact", // no attsch
		"8,1.0,Employed",
	}
	if _, err := Load(writeExtract(t, rows), DefaultLoadOptions()); err == nil {
		t.Fatalf("expected error for missing required column")
	}
}

func TestLoadRejectsBadWeight(t *testing.T) {
	for _, w := range []string{"0", "-1.5", "heavy"} {
		rows := []string{
			"agegrp,weight,lfact,attsch",
			"8," + w + ",Employed,Attended school",
		}
		if _, err := Load(writeExtract(t, rows), DefaultLoadOptions()); err == nil {
			t.Fatalf("weight %q: expected error", w)
		}
	}
}

func TestConsolidateLabourForce(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		matched bool
	}{
		{"Employed - worked in reference week", LFSEmployed, true},
		{"Unemployed - temporary layoff", LFSUnemployed, true},
		{"Not in the labour force", LFSNotInLabour, true},
		{"Retired or something else", "", false},
	}
	for _, tc := range cases {
		got, ok := ConsolidateLabourForce(tc.in)
		if ok != tc.matched || got != tc.want {
			t.Fatalf("%q: got (%q,%v), want (%q,%v)", tc.in, got, ok, tc.want, tc.matched)
		}
	}
}
