package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const runInfoSheet = "Run info"

// Workbook renders the whole run as an XLSX workbook: one sheet per
// section plus a run-info sheet with provenance and warnings. Shares are
// written as raw numbers with a percent cell format so the stored values
// stay exact.
func (r *Run) Workbook() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetDocProps(&excelize.DocProperties{
		Title:       "Youth statistical report",
		Subject:     "Weighted census microdata aggregates",
		Creator:     "youthstat",
		Description: fmt.Sprintf("Run %s, source %s", r.ID, r.Source),
		Created:     r.GeneratedAt.Format("2006-01-02T15:04:05Z"),
	})

	pctStyle, err := f.NewStyle(&excelize.Style{NumFmt: 10}) // 0.00%
	if err != nil {
		return nil, fmt.Errorf("new style: %w", err)
	}

	for _, t := range r.Tables {
		if err := addTableSheet(f, t, pctStyle); err != nil {
			return nil, fmt.Errorf("sheet for section %s: %w", t.ID, err)
		}
	}
	if err := addRunInfoSheet(f, r); err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func addTableSheet(f *excelize.File, t *Table, pctStyle int) error {
	// Sheet names cap at 31 chars; section IDs are short and unique.
	name := t.ID
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	if err := f.SetCellValue(name, "A1", t.Title); err != nil {
		return err
	}

	headers := []string{"Variable", "Category"}
	for _, c := range t.Columns {
		headers = append(headers, c.Header)
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return err
		}
	}
	for ri, row := range t.Rows {
		y := ri + 4
		if err := f.SetCellValue(name, mustCell(1, y), row.Variable); err != nil {
			return err
		}
		if err := f.SetCellValue(name, mustCell(2, y), row.Label); err != nil {
			return err
		}
		for ci, c := range t.Columns {
			v, ok := row.Values[c.Key]
			if !ok {
				continue
			}
			cell := mustCell(ci+3, y)
			if err := f.SetCellValue(name, cell, v); err != nil {
				return err
			}
			if c.Kind == KindShare || c.Kind == KindCumShare {
				if err := f.SetCellStyle(name, cell, cell, pctStyle); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func addRunInfoSheet(f *excelize.File, r *Run) error {
	if _, err := f.NewSheet(runInfoSheet); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Run ID", r.ID},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Source", r.Source},
		{"Sections", len(r.Tables)},
	}
	for _, w := range r.Warnings {
		rows = append(rows, []interface{}{"Warning", w})
	}
	for y, row := range rows {
		for x, v := range row {
			if err := f.SetCellValue(runInfoSheet, mustCell(x+1, y+1), v); err != nil {
				return err
			}
		}
	}
	return nil
}

func mustCell(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
