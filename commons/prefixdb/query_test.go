// SPDX-License-Identifier: GPL-3.0-only

package prefixdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `Prefix;Operator
+48501;Orange Polska S.A.
+48 5012 ; Orange (range)
72;P4 Sp. z o.o.
;missing prefix
+48600;
justone

+48880;"T-Mobile Polska";extra
`

func TestParse(t *testing.T) {
	db, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := map[string]string{
		"501":  "Orange Polska S.A.",
		"5012": "Orange (range)",
		"72":   "P4 Sp. z o.o.",
		"880":  "T-Mobile Polska",
	}
	if db.Len() != len(want) {
		t.Errorf("Len = %d, want %d: %+v", db.Len(), len(want), db.Entries())
	}
	for prefix, label := range want {
		got, ok := db.Lookup(prefix)
		if !ok || got != label {
			t.Errorf("Lookup(%s) = %q, %v; want %q", prefix, got, ok, label)
		}
	}
	if _, ok := db.Lookup("600"); ok {
		t.Error("row with empty label should be skipped")
	}
	if _, ok := db.Lookup("Prefix"); ok {
		t.Error("header row should be skipped")
	}
}

func TestParseUnterminatedQuoteAffectsOneRow(t *testing.T) {
	input := "prefix;operator\n+48501;\"Orange Flex\n+48721;Play\n+48881;T-Mobile\n"
	db, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := map[string]string{
		"501": `"Orange Flex`,
		"721": "Play",
		"881": "T-Mobile",
	}
	if db.Len() != len(want) {
		t.Fatalf("Len = %d, want %d: %+v", db.Len(), len(want), db.Entries())
	}
	for prefix, label := range want {
		if got, ok := db.Lookup(prefix); !ok || got != label {
			t.Errorf("Lookup(%s) = %q, %v; want %q", prefix, got, ok, label)
		}
	}
}

func TestParseCRLF(t *testing.T) {
	db, err := Parse(strings.NewReader("prefix;operator\r\n+48501;Orange\r\n+48721;Play\r\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, _ := db.Lookup("721"); got != "Play" {
		t.Errorf("Lookup(721) = %q, want Play", got)
	}
}

func TestParseOverlongLineFails(t *testing.T) {
	input := "prefix;operator\n+48501;" + strings.Repeat("x", maxLineLength+1) + "\n"
	if _, err := Parse(strings.NewReader(input)); err == nil {
		t.Error("expected error for a line longer than the scanner limit")
	}
}

func TestParseHeaderOnly(t *testing.T) {
	db, err := Parse(strings.NewReader("Prefix;Operator\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if db.Len() != 0 {
		t.Errorf("Len = %d, want 0", db.Len())
	}
}

func TestNilDatabase(t *testing.T) {
	var db *Database
	if db.Len() != 0 {
		t.Error("nil database should be empty")
	}
	if _, ok := db.Lookup("50"); ok {
		t.Error("nil database should not match")
	}
	if db.Entries() != nil {
		t.Error("nil database should have no entries")
	}
}

func TestMerge(t *testing.T) {
	base := BuildIndex([]Entry{{"501", "Orange"}, {"72", "P4"}})
	overwrite := BuildIndex([]Entry{{"501", "Orange Flex"}, {"88", "T-Mobile"}})

	merged := Merge(base, overwrite)
	if merged.Len() != 3 {
		t.Errorf("Len = %d, want 3", merged.Len())
	}
	if got, _ := merged.Lookup("501"); got != "Orange Flex" {
		t.Errorf("overwrite did not win: %q", got)
	}
	if got, _ := base.Lookup("501"); got != "Orange" {
		t.Error("Merge mutated the base database")
	}
	if Merge(base, nil).Len() != 2 {
		t.Error("Merge with nil overwrite should copy base")
	}

	entries := merged.Entries()
	if entries[0].Prefix != "501" || entries[2].Prefix != "88" {
		t.Errorf("Entries not sorted: %+v", entries)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefixes.csv")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	db, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if db.Len() != 4 {
		t.Errorf("Len = %d, want 4", db.Len())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/prefixes.csv" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(sample))
	}))
	defer srv.Close()

	db, err := LoadURL(context.Background(), srv.Client(), srv.URL+"/prefixes.csv")
	if err != nil {
		t.Fatalf("LoadURL: %v", err)
	}
	if db.Len() != 4 {
		t.Errorf("Len = %d, want 4", db.Len())
	}

	if _, err := LoadURL(context.Background(), srv.Client(), srv.URL+"/nope.csv"); err == nil {
		t.Error("expected error for 404")
	}
}
