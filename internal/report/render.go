package report

import (
	"fmt"
	"strings"
)

// Text renders the table as a markdown-style grid. This is the only place
// proportions become percentages; the engine upstream never rounds.
func (t *Table) Text() string {
	var b strings.Builder
	b.WriteString("## ")
	b.WriteString(t.Title)
	b.WriteString("\n\n")
	if t.Empty() {
		b.WriteString("(no matching records)\n")
		return b.String()
	}

	grouped := t.multiVariable()
	headers := []string{}
	if grouped {
		headers = append(headers, "Variable")
	}
	headers = append(headers, "Category")
	for _, c := range t.Columns {
		headers = append(headers, c.Header)
	}
	b.WriteString("| ")
	b.WriteString(strings.Join(headers, " | "))
	b.WriteString(" |\n| ")
	for i := range headers {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString("---")
	}
	b.WriteString(" |\n")

	prevVar := ""
	for _, row := range t.Rows {
		cells := []string{}
		if grouped {
			// Repeat the variable label only on its first row.
			v := row.Variable
			if v == prevVar {
				v = ""
			} else {
				prevVar = row.Variable
			}
			cells = append(cells, v)
		}
		cells = append(cells, row.Label)
		for _, c := range t.Columns {
			v, ok := row.Values[c.Key]
			if !ok {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, formatCell(c.Kind, v))
		}
		b.WriteString("| ")
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString(" |\n")
	}
	return b.String()
}

func formatCell(kind string, v float64) string {
	switch kind {
	case KindShare, KindCumShare:
		return fmt.Sprintf("%.1f%%", v*100)
	case KindWeight:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.4g", v)
	}
}

// Text renders the whole run: a heading with provenance, every table, and
// any data-quality warnings.
func (r *Run) Text() string {
	var b strings.Builder
	b.WriteString("# Youth statistical report\n\n")
	b.WriteString(fmt.Sprintf("Run %s — generated %s — source %s\n\n", r.ID, r.GeneratedAt.Format("2006-01-02 15:04:05 MST"), r.Source))
	for _, t := range r.Tables {
		b.WriteString(t.Text())
		b.WriteString("\n")
	}
	if len(r.Warnings) > 0 {
		b.WriteString("## Notes\n\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}
