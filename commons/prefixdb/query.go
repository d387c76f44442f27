// SPDX-License-Identifier: GPL-3.0-only

package prefixdb

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
)

const (
	delimiter     = ";"
	countryPrefix = "+48"
	maxLineLength = 1 << 20
)

// ParseEntries reads a semicolon-delimited prefix list, one row per line.
// The first line is a header and is skipped. Only the first two fields of a
// row are used; rows without both a prefix and a label are ignored. A label
// wrapped in double quotes is unquoted, but quotes never span lines.
func ParseEntries(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var entries []Entry
	header := true
	for scanner.Scan() {
		if header {
			header = false
			continue
		}
		prefix, rest, ok := strings.Cut(scanner.Text(), delimiter)
		if !ok {
			continue
		}
		label, _, _ := strings.Cut(rest, delimiter)

		prefix = strings.TrimSpace(strings.ReplaceAll(prefix, countryPrefix, ""))
		label = unquote(strings.TrimSpace(label))
		if prefix == "" || label == "" {
			continue
		}
		entries = append(entries, Entry{Prefix: prefix, Operator: label})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read prefix database: %w", err)
	}
	return entries, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// Parse reads a whole database. Either every row is read or an error is
// returned; a partially read database is never handed out.
func Parse(r io.Reader) (*Database, error) {
	entries, err := ParseEntries(r)
	if err != nil {
		return nil, err
	}
	return BuildIndex(entries), nil
}

func LoadFile(filePath string) (*Database, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func LoadURL(ctx context.Context, client *http.Client, url string) (*Database, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch prefix database: %s", resp.Status)
	}
	return Parse(resp.Body)
}

// BuildIndex indexes entries by prefix. Later entries win, so an overwrite
// list can be appended to a base list.
func BuildIndex(entries []Entry) *Database {
	db := &Database{byPrefix: make(map[string]string, len(entries))}
	for _, e := range entries {
		db.byPrefix[e.Prefix] = e.Operator
	}
	return db
}

// Merge returns a new database holding base overlaid with overwrite.
func Merge(base, overwrite *Database) *Database {
	merged := &Database{byPrefix: make(map[string]string, base.Len()+overwrite.Len())}
	for _, src := range []*Database{base, overwrite} {
		if src == nil {
			continue
		}
		for p, op := range src.byPrefix {
			merged.byPrefix[p] = op
		}
	}
	return merged
}

func (db *Database) Lookup(prefix string) (string, bool) {
	if db == nil {
		return "", false
	}
	op, ok := db.byPrefix[prefix]
	return op, ok
}

func (db *Database) Len() int {
	if db == nil {
		return 0
	}
	return len(db.byPrefix)
}

// Entries returns all rows sorted by prefix.
func (db *Database) Entries() []Entry {
	if db == nil {
		return nil
	}
	entries := make([]Entry, 0, len(db.byPrefix))
	for p, op := range db.byPrefix {
		entries = append(entries, Entry{Prefix: p, Operator: op})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Prefix < entries[j].Prefix })
	return entries
}
