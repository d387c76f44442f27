// SPDX-License-Identifier: GPL-3.0-only

package prefixdb

// Entry is one row of the prefix database: a national prefix of any length
// and the operator label assigned to it.
type Entry struct {
	Prefix   string `json:"prefix"`
	Operator string `json:"operator"`
}

// Database is a read-only prefix to label index. A nil *Database is empty.
type Database struct {
	byPrefix map[string]string
}
