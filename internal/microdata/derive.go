package microdata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/statnotes/youthstat/internal/logger"
)

// lfsPatterns maps substrings of the dense source labour-force strings to
// the consolidated category. The extract encodes activity as phrases like
// "Employed - worked in reference week"; matching is case-insensitive and
// order matters ("unemployed" must be tested before "employed").
var lfsPatterns = []struct {
	needle   string
	category string
}{
	{"unemployed", LFSUnemployed},
	{"not in the labour force", LFSNotInLabour},
	{"not in labour force", LFSNotInLabour},
	{"employed", LFSEmployed},
}

// ConsolidateLabourForce extracts the consolidated labour-force category
// from a dense source string. The second return is false when the string
// matches no known pattern.
func ConsolidateLabourForce(raw string) (string, bool) {
	s := strings.ToLower(raw)
	for _, p := range lfsPatterns {
		if strings.Contains(s, p.needle) {
			return p.category, true
		}
	}
	return "", false
}

// Derive computes the derived-field layer in place, exactly once per
// dataset:
//
//   - AgeGroup, WorkingAge (codes 7-16), Youth (codes 7-9) and the
//     categorical youth_flag split column;
//   - consolidated labour-force status, overwriting the dense source value;
//   - the NEET variant: Unemployed or Not in labour force combined with
//     "Did not attend school" reclassifies to NEET.
//
// An unparseable age-group code aborts: it indicates an upstream schema
// violation and silently dropping rows would bias every weighted total.
func Derive(ds *Dataset, log logger.Logger) error {
	if log == nil {
		log = logger.Discard()
	}
	if ds.derived {
		return nil
	}
	unmatched := 0
	for i := range ds.Records {
		r := &ds.Records[i]

		ageRaw, ok := r.Value(ColAgeGroup)
		if !ok {
			return fmt.Errorf("record %d: missing age group", i+1)
		}
		code, err := strconv.Atoi(ageRaw)
		if err != nil {
			return fmt.Errorf("record %d: parse age group %q: %w", i+1, ageRaw, err)
		}
		r.AgeGroup = code
		r.WorkingAge = code >= ageCodeWorkingMin && code <= ageCodeWorkingMax
		r.Youth = code >= ageCodeWorkingMin && code <= ageCodeYouthMax
		if r.Youth {
			r.set(ColYouthFlag, YouthFlagYouth)
		} else {
			r.set(ColYouthFlag, YouthFlagNonYouth)
		}

		if raw, ok := r.Value(ColLabourForce); ok {
			lfs, matched := ConsolidateLabourForce(raw)
			if !matched {
				unmatched++
				r.set(ColLabourForce, "")
				r.set(ColLabourForceNEET, "")
				continue
			}
			r.set(ColLabourForce, lfs)

			neet := lfs
			att, hasAtt := r.Value(ColAttendance)
			if lfs != LFSEmployed && hasAtt && strings.EqualFold(att, AttendanceDidNot) {
				neet = LFSNEET
			}
			r.set(ColLabourForceNEET, neet)
		}
	}
	if unmatched > 0 {
		log.Warnf("labour force: %d record(s) with unrecognized activity string excluded", unmatched)
	}
	ds.Columns = append(ds.Columns, ColLabourForceNEET, ColYouthFlag)
	ds.derived = true
	return nil
}
