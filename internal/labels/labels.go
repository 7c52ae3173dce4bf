// Package labels joins internal variable names and category codes to the
// human-readable strings used in rendered tables. Misses never fail a
// render: the raw code is returned and logged as a data-quality signal.
package labels

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/statnotes/youthstat/internal/logger"
)

// VariableLabels describes one variable: its display name and the mapping
// from raw category codes to value labels.
type VariableLabels struct {
	Name   string            `yaml:"name"`
	Values map[string]string `yaml:"values"`
}

// file is the YAML layout of an external label table.
type file struct {
	Variables map[string]VariableLabels `yaml:"variables"`
}

// Table resolves (variable, code) pairs to display labels. Tables layer:
// an override table consults itself first, then its parent.
type Table struct {
	vars   map[string]VariableLabels
	parent *Table
	log    logger.Logger
}

// New builds a Table from explicit mappings.
func New(vars map[string]VariableLabels, log logger.Logger) *Table {
	if log == nil {
		log = logger.Discard()
	}
	return &Table{vars: vars, log: log}
}

// Load reads a YAML label table, layered over the builtin base so an
// external file only needs to carry deviations.
func Load(path string, log logger.Logger) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse labels: %w", err)
	}
	return Builtin(log).WithOverrides(f.Variables), nil
}

// WithOverrides layers bespoke per-section labels over this table. The
// override takes precedence; the receiver is not modified.
func (t *Table) WithOverrides(vars map[string]VariableLabels) *Table {
	return &Table{vars: vars, parent: t, log: t.log}
}

// Variable resolves a variable name to its display label, falling back to
// the raw name.
func (t *Table) Variable(name string) string {
	for cur := t; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok && v.Name != "" {
			return v.Name
		}
	}
	t.log.WithField("variable", name).Warn("labels: unresolved variable name")
	return name
}

// Value resolves a category code to its display label, falling back to the
// raw code. The fallback is deliberate: one missing label must not fail a
// whole render.
func (t *Table) Value(variable, code string) string {
	for cur := t; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[variable]; ok {
			if label, ok := v.Values[code]; ok {
				return label
			}
		}
	}
	t.log.WithField("variable", variable).WithField("code", code).Warn("labels: unresolved value code")
	return code
}
