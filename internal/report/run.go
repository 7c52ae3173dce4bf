package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Execute runs every section against the context sequentially. Sections
// are independent read-only queries, so a section that matches nothing
// contributes an empty table and a warning rather than failing the run;
// computation errors (zero-weight denominators, schema problems) abort.
func Execute(ctx *Context, secs []Section, source string) (*Run, error) {
	run := &Run{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Source:      source,
	}
	for _, s := range secs {
		ctx.Log.Debugf("building section %s", s.ID)
		t, err := s.Build(ctx)
		if err != nil {
			return nil, fmt.Errorf("build section %s: %w", s.ID, err)
		}
		if t.Empty() {
			w := fmt.Sprintf("section %s matched no records", s.ID)
			ctx.Log.Warn(w)
			run.Warnings = append(run.Warnings, w)
		}
		run.Tables = append(run.Tables, t)
	}
	return run, nil
}
