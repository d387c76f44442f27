// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/gommon/log"
)

func TestEnvFileArg(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--debug", "--env-file", "prod.env"}, "prod.env"},
		{[]string{"--env-file"}, ""},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := EnvFileArg(tt.args); got != tt.want {
			t.Errorf("EnvFileArg(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("PLMOBILE_TEST_VALUE", "set")
	if got := GetEnv("PLMOBILE_TEST_VALUE", "default"); got != "set" {
		t.Errorf("GetEnv = %q, want set", got)
	}
	if got := GetEnv("PLMOBILE_TEST_MISSING", "default"); got != "default" {
		t.Errorf("GetEnv = %q, want default", got)
	}
	if got := GetEnv("PLMOBILE_TEST_MISSING"); got != "" {
		t.Errorf("GetEnv = %q, want empty", got)
	}

	t.Setenv("PLMOBILE_TEST_INT", "12")
	if got := GetEnvInt("PLMOBILE_TEST_INT", 3); got != 12 {
		t.Errorf("GetEnvInt = %d, want 12", got)
	}
	t.Setenv("PLMOBILE_TEST_INT", "twelve")
	if got := GetEnvInt("PLMOBILE_TEST_INT", 3); got != 3 {
		t.Errorf("GetEnvInt = %d, want fallback 3", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]log.Lvl{
		"debug": log.DEBUG,
		"WARN":  log.WARN,
		"error": log.ERROR,
		"off":   log.OFF,
		"":      log.INFO,
		"loud":  log.INFO,
	}
	for in, want := range tests {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitTable(t *testing.T) {
	t.Setenv("PREFIX_TABLE", "browser")
	table, err := InitTable()
	if err != nil {
		t.Fatalf("InitTable: %v", err)
	}
	if table.Name() != "browser" {
		t.Errorf("table = %q, want browser", table.Name())
	}

	t.Setenv("PREFIX_TABLE", "nope")
	if _, err := InitTable(); err == nil {
		t.Error("expected error for unknown preset")
	}

	path := filepath.Join(t.TempDir(), "table.yaml")
	doc := "name: file\noperators:\n  - operator: Orange\n    prefixes: [\"50\"]\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PREFIX_TABLE_FILE", path)
	table, err = InitTable()
	if err != nil {
		t.Fatalf("InitTable(file): %v", err)
	}
	if table.Name() != "file" {
		t.Errorf("table = %q, want file", table.Name())
	}
}

func TestInitRecognizerDegradesWithoutDatabase(t *testing.T) {
	t.Setenv("PREFIX_DB_PATH", filepath.Join(t.TempDir(), "missing.csv"))
	r, err := InitRecognizer(context.Background())
	if err != nil {
		t.Fatalf("InitRecognizer: %v", err)
	}
	if r.HasDetailedDatabase() {
		t.Error("missing database file should disable detailed lookup")
	}
	if got := r.Recognize("501234567"); !got.Success || got.Operator != "Orange" {
		t.Errorf("Recognize = %+v", got)
	}
}

func TestInitRecognizerWithOverwrite(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.csv")
	overwrite := filepath.Join(dir, "overwrite.csv")
	if err := os.WriteFile(base, []byte("prefix;operator\n+48501;Orange\n+48721;Play\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(overwrite, []byte("prefix;operator\n+48501;Orange Flex\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PREFIX_DB_PATH", base)
	t.Setenv("PREFIX_DB_OVERWRITE_PATH", overwrite)

	r, err := InitRecognizer(context.Background())
	if err != nil {
		t.Fatalf("InitRecognizer: %v", err)
	}
	if got := r.Recognize("501234567").DetailedOperator; got != "Orange Flex" {
		t.Errorf("DetailedOperator = %q, want Orange Flex", got)
	}
	if got := r.Recognize("721234567").DetailedOperator; got != "Play" {
		t.Errorf("DetailedOperator = %q, want Play", got)
	}
}

func TestCarrierHintRejectsGarbage(t *testing.T) {
	if got := CarrierHint(""); got != "" {
		t.Errorf("CarrierHint(\"\") = %q", got)
	}
	if got := CarrierHint("12"); got != "" {
		t.Errorf("CarrierHint(12) = %q", got)
	}
}
