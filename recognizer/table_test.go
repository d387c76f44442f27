// SPDX-License-Identifier: GPL-3.0-only

package recognizer

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestNewTableRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  TableConfig
		want string
	}{
		{name: "no operators", cfg: TableConfig{Name: "x"}, want: "no operators"},
		{
			name: "overlap",
			cfg: TableConfig{Operators: []OperatorPrefixes{
				{Operator: "A", Prefixes: []string{"50"}},
				{Operator: "B", Prefixes: []string{"50"}},
			}},
			want: "assigned to both",
		},
		{
			name: "bad prefix",
			cfg:  TableConfig{Operators: []OperatorPrefixes{{Operator: "A", Prefixes: []string{"5a"}}}},
			want: "invalid prefix",
		},
		{
			name: "empty operator",
			cfg:  TableConfig{Operators: []OperatorPrefixes{{Operator: " ", Prefixes: []string{"50"}}}},
			want: "operator name",
		},
		{
			name: "m2m outside valid set",
			cfg: TableConfig{
				Operators: []OperatorPrefixes{{Operator: "A", Prefixes: []string{"50"}}},
				M2M:       []string{"21"},
			},
			want: "M2M prefix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestPresetsHaveNoOverlapsAndShareValidSet(t *testing.T) {
	if !reflect.DeepEqual(ServerTable().ValidPrefixes(), BrowserTable().ValidPrefixes()) {
		t.Error("presets disagree on the valid prefix set")
	}
	if got := ServerTable().M2MPrefixes(); !reflect.DeepEqual(got, []string{"21"}) {
		t.Errorf("server M2M = %v", got)
	}
	if got := BrowserTable().M2MPrefixes(); !reflect.DeepEqual(got, []string{"21", "69"}) {
		t.Errorf("browser M2M = %v", got)
	}
}

func TestTableByName(t *testing.T) {
	for _, name := range []string{"", "server", "SERVER"} {
		table, err := TableByName(name)
		if err != nil || table != ServerTable() {
			t.Errorf("TableByName(%q) = %v, %v", name, table, err)
		}
	}
	if table, err := TableByName("browser"); err != nil || table != BrowserTable() {
		t.Errorf("TableByName(browser) = %v, %v", table, err)
	}
	if _, err := TableByName("mobile-2030"); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("TableByName(unknown) err = %v", err)
	}
}

func TestParseTableYAML(t *testing.T) {
	doc := `
name: custom
operators:
  - operator: Orange
    prefixes: ["50", "51"]
  - operator: Plus
    prefixes: ["21"]
m2m: ["21"]
`
	table, err := ParseTableYAML([]byte(doc))
	if err != nil {
		t.Fatalf("ParseTableYAML: %v", err)
	}
	if table.Name() != "custom" {
		t.Errorf("Name = %q", table.Name())
	}
	if got := table.ValidPrefixes(); !reflect.DeepEqual(got, []string{"21", "50", "51"}) {
		t.Errorf("ValidPrefixes = %v", got)
	}
	if !table.IsM2M("21") || table.IsM2M("50") {
		t.Error("M2M set not honoured")
	}
	if table.Operator("51") != "Orange" {
		t.Errorf("Operator(51) = %q", table.Operator("51"))
	}

	if _, err := ParseTableYAML([]byte("operators: [")); err == nil {
		t.Error("expected error for malformed yaml")
	}

	cfg := BrowserTable().Config()
	round, err := NewTable(cfg)
	if err != nil {
		t.Fatalf("NewTable(Config()): %v", err)
	}
	if !reflect.DeepEqual(round.Operators(), BrowserTable().Operators()) {
		t.Error("Config does not reproduce the table")
	}
}
