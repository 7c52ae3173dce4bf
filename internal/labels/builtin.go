package labels

import (
	"github.com/statnotes/youthstat/internal/logger"
	"github.com/statnotes/youthstat/internal/microdata"
)

// Builtin returns the base label table for the extract's variables. The
// age-group buckets follow the extract's 16-code scheme: codes 7-16 span
// the working-age population, 7-9 the youth range (18 to 29).
func Builtin(log logger.Logger) *Table {
	return New(map[string]VariableLabels{
		microdata.ColAgeGroup: {
			Name: "Age group",
			Values: map[string]string{
				"1":  "0 to 2 years",
				"2":  "3 to 5 years",
				"3":  "6 to 9 years",
				"4":  "10 to 13 years",
				"5":  "14 to 15 years",
				"6":  "16 to 17 years",
				"7":  "18 to 21 years",
				"8":  "22 to 25 years",
				"9":  "26 to 29 years",
				"10": "30 to 34 years",
				"11": "35 to 39 years",
				"12": "40 to 44 years",
				"13": "45 to 49 years",
				"14": "50 to 54 years",
				"15": "55 to 59 years",
				"16": "60 to 64 years",
			},
		},
		microdata.ColLabourForce: {
			Name: "Labour force status",
			Values: map[string]string{
				microdata.LFSEmployed:    "Employed",
				microdata.LFSUnemployed:  "Unemployed",
				microdata.LFSNotInLabour: "Not in the labour force",
			},
		},
		microdata.ColLabourForceNEET: {
			Name: "Labour force status (NEET)",
			Values: map[string]string{
				microdata.LFSEmployed:    "Employed",
				microdata.LFSUnemployed:  "Unemployed, in school",
				microdata.LFSNotInLabour: "Not in the labour force, in school",
				microdata.LFSNEET:        "Not in employment, education or training (NEET)",
			},
		},
		microdata.ColAttendance: {
			Name: "School attendance",
			Values: map[string]string{
				"Attended school":       "Attended school",
				"Did not attend school": "Did not attend school",
			},
		},
		microdata.ColYouthFlag: {
			Name: "Youth",
			Values: map[string]string{
				microdata.YouthFlagYouth:    "Youth (18 to 29 years)",
				microdata.YouthFlagNonYouth: "Other working-age adults (30 to 64 years)",
			},
		},
		"immstat": {
			Name: "Immigration status",
			Values: map[string]string{
				"1": "Non-immigrant",
				"2": "Immigrant",
				"3": "Non-permanent resident",
			},
		},
		"gender": {
			Name: "Gender",
			Values: map[string]string{
				"1": "Men+",
				"2": "Women+",
			},
		},
		"indig": {
			Name: "Indigenous identity",
			Values: map[string]string{
				"1": "Indigenous identity",
				"2": "Non-Indigenous identity",
			},
		},
		"hcorened": {
			Name: "Core housing need",
			Values: map[string]string{
				"1": "In core housing need",
				"2": "Not in core housing need",
			},
		},
		"lim_at": {
			Name: "Low income (LIM-AT)",
			Values: map[string]string{
				"1": "In low income",
				"2": "Not in low income",
			},
		},
		"lico_at": {
			Name: "Low income (LICO-AT)",
			Values: map[string]string{
				"1": "In low income",
				"2": "Not in low income",
			},
		},
		"mbm": {
			Name: "Poverty (MBM)",
			Values: map[string]string{
				"1": "Below the poverty line",
				"2": "Above the poverty line",
			},
		},
	}, log)
}
