// SPDX-License-Identifier: GPL-3.0-only

package recognizer

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnknownTable = errors.New("unknown prefix table")

// OperatorPrefixes assigns a list of 2-digit prefixes to one operator.
type OperatorPrefixes struct {
	Operator string   `yaml:"operator" json:"operator"`
	Prefixes []string `yaml:"prefixes" json:"prefixes"`
}

// TableConfig is the declarative form of a Table, as written in YAML files.
// ValidPrefixes defaults to the union of all operator prefixes.
type TableConfig struct {
	Name          string             `yaml:"name"`
	Operators     []OperatorPrefixes `yaml:"operators"`
	M2M           []string           `yaml:"m2m"`
	ValidPrefixes []string           `yaml:"valid_prefixes,omitempty"`
}

// Table maps prefixes to operators. It is immutable once built and safe for
// concurrent use.
type Table struct {
	name      string
	operators []OperatorPrefixes
	validList []string
	valid     map[string]struct{}
	m2m       map[string]struct{}
	m2mList   []string
}

func NewTable(cfg TableConfig) (*Table, error) {
	if len(cfg.Operators) == 0 {
		return nil, fmt.Errorf("table %q: no operators defined", cfg.Name)
	}

	t := &Table{
		name:  cfg.Name,
		valid: make(map[string]struct{}),
		m2m:   make(map[string]struct{}),
	}

	owner := make(map[string]string)
	for _, op := range cfg.Operators {
		name := strings.TrimSpace(op.Operator)
		if name == "" {
			return nil, fmt.Errorf("table %q: operator name is required", cfg.Name)
		}
		if len(op.Prefixes) == 0 {
			return nil, fmt.Errorf("table %q: operator %s has no prefixes", cfg.Name, name)
		}
		prefixes := make([]string, 0, len(op.Prefixes))
		for _, p := range op.Prefixes {
			if !isPrefix(p) {
				return nil, fmt.Errorf("table %q: operator %s: invalid prefix %q", cfg.Name, name, p)
			}
			if prev, ok := owner[p]; ok {
				return nil, fmt.Errorf("table %q: prefix %s assigned to both %s and %s", cfg.Name, p, prev, name)
			}
			owner[p] = name
			prefixes = append(prefixes, p)
		}
		t.operators = append(t.operators, OperatorPrefixes{Operator: name, Prefixes: prefixes})
	}

	if len(cfg.ValidPrefixes) > 0 {
		for _, p := range cfg.ValidPrefixes {
			if !isPrefix(p) {
				return nil, fmt.Errorf("table %q: invalid valid prefix %q", cfg.Name, p)
			}
			if _, dup := t.valid[p]; dup {
				continue
			}
			t.valid[p] = struct{}{}
			t.validList = append(t.validList, p)
		}
	} else {
		for p := range owner {
			t.valid[p] = struct{}{}
			t.validList = append(t.validList, p)
		}
		sort.Strings(t.validList)
	}

	for _, p := range cfg.M2M {
		if _, ok := t.valid[p]; !ok {
			return nil, fmt.Errorf("table %q: M2M prefix %q is not a valid prefix", cfg.Name, p)
		}
		if _, dup := t.m2m[p]; dup {
			continue
		}
		t.m2m[p] = struct{}{}
		t.m2mList = append(t.m2mList, p)
	}

	return t, nil
}

func MustNewTable(cfg TableConfig) *Table {
	t, err := NewTable(cfg)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTableYAML builds a Table from a YAML document shaped like TableConfig.
func ParseTableYAML(data []byte) (*Table, error) {
	var cfg TableConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse table yaml: %w", err)
	}
	return NewTable(cfg)
}

func isPrefix(p string) bool {
	return len(p) == 2 && p[0] >= '0' && p[0] <= '9' && p[1] >= '0' && p[1] <= '9'
}

func (t *Table) Name() string {
	return t.name
}

// Operator scans operators in table order and returns the first one owning
// prefix, or UnknownOperator.
func (t *Table) Operator(prefix string) string {
	for _, op := range t.operators {
		if slices.Contains(op.Prefixes, prefix) {
			return op.Operator
		}
	}
	return UnknownOperator
}

func (t *Table) IsValid(prefix string) bool {
	_, ok := t.valid[prefix]
	return ok
}

func (t *Table) IsM2M(prefix string) bool {
	_, ok := t.m2m[prefix]
	return ok
}

func (t *Table) ValidPrefixes() []string {
	return slices.Clone(t.validList)
}

func (t *Table) M2MPrefixes() []string {
	return slices.Clone(t.m2mList)
}

func (t *Table) Operators() []OperatorPrefixes {
	out := make([]OperatorPrefixes, len(t.operators))
	for i, op := range t.operators {
		out[i] = OperatorPrefixes{Operator: op.Operator, Prefixes: slices.Clone(op.Prefixes)}
	}
	return out
}

// Config returns the declarative form of t, suitable for YAML output.
func (t *Table) Config() TableConfig {
	return TableConfig{
		Name:          t.name,
		Operators:     t.Operators(),
		M2M:           t.M2MPrefixes(),
		ValidPrefixes: t.ValidPrefixes(),
	}
}
