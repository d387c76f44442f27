// SPDX-License-Identifier: GPL-3.0-only

package recognizer

import (
	"fmt"
	"strings"
)

const (
	ServerTableName  = "server"
	BrowserTableName = "browser"
)

// The two historical assignments disagree on several prefixes and on the M2M
// set. Neither is authoritative, so both stay selectable.
var (
	serverTable = MustNewTable(TableConfig{
		Name: ServerTableName,
		Operators: []OperatorPrefixes{
			{Operator: "Play", Prefixes: []string{"53", "60", "72", "73", "78", "79"}},
			{Operator: "Orange", Prefixes: []string{"50", "51", "57", "66", "69"}},
			{Operator: "T-Mobile", Prefixes: []string{"45", "88"}},
			{Operator: "Plus", Prefixes: []string{"21"}},
		},
		M2M: []string{"21"},
	})

	browserTable = MustNewTable(TableConfig{
		Name: BrowserTableName,
		Operators: []OperatorPrefixes{
			{Operator: "Play", Prefixes: []string{"53", "79"}},
			{Operator: "Orange", Prefixes: []string{"50", "51", "57", "78"}},
			{Operator: "T-Mobile", Prefixes: []string{"45", "60", "66", "72", "73", "88"}},
			{Operator: "Plus", Prefixes: []string{"21", "69"}},
		},
		M2M: []string{"21", "69"},
	})
)

func ServerTable() *Table {
	return serverTable
}

func BrowserTable() *Table {
	return browserTable
}

// TableNames lists the preset names accepted by TableByName.
func TableNames() []string {
	return []string{ServerTableName, BrowserTableName}
}

func TableByName(name string) (*Table, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ServerTableName:
		return serverTable, nil
	case BrowserTableName:
		return browserTable, nil
	default:
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownTable, name, strings.Join(TableNames(), ", "))
	}
}
