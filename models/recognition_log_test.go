// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"testing"

	"plmobile-server/recognizer"
)

func TestNewRecognitionLog(t *testing.T) {
	r := recognizer.New(recognizer.ServerTable(), nil)
	hash := func(s string) string { return "h:" + s }

	t.Run("recognized", func(t *testing.T) {
		entry := NewRecognitionLog("server", "api", r.Recognize("+48 211 234 567"), hash)
		if entry.Status != Recognized || !entry.IsM2M {
			t.Errorf("status/m2m = %s/%v", entry.Status, entry.IsM2M)
		}
		if entry.Operator == nil || *entry.Operator != "Plus" {
			t.Errorf("operator = %v", entry.Operator)
		}
		if entry.Prefix == nil || *entry.Prefix != "21" {
			t.Errorf("prefix = %v", entry.Prefix)
		}
		if entry.NumberHash == nil || *entry.NumberHash != "h:211234567" {
			t.Errorf("number hash = %v", entry.NumberHash)
		}
		if entry.ErrorKind != nil || entry.DetailedOperator != nil {
			t.Error("unexpected error kind or detailed operator")
		}
		if entry.PrefixTable != "server" || entry.Source != "api" {
			t.Errorf("table/source = %s/%s", entry.PrefixTable, entry.Source)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		entry := NewRecognitionLog("server", "consumer", r.Recognize("991234567"), hash)
		if entry.Status != Rejected {
			t.Errorf("status = %s", entry.Status)
		}
		if entry.ErrorKind == nil || *entry.ErrorKind != "PREFIX" {
			t.Errorf("error kind = %v", entry.ErrorKind)
		}
		if entry.NumberHash != nil || entry.Operator != nil {
			t.Error("rejected entries must not carry number data")
		}
	})

	t.Run("no hash", func(t *testing.T) {
		entry := NewRecognitionLog("server", "api", r.Recognize("501234567"), nil)
		if entry.NumberHash != nil {
			t.Error("number hash set without a hash function")
		}
	})
}
