// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"encoding/json"
	"testing"
	"time"

	"plmobile-server/recognizer"
)

func TestNewRecognitionEvent(t *testing.T) {
	r := recognizer.New(recognizer.ServerTable(), nil)
	result := r.Recognize("501234567")

	ev := NewRecognitionEvent("server", result)

	if ev.ID == "" {
		t.Error("Expected non-empty event ID")
	}
	if ev.Table != "server" {
		t.Errorf("Expected table server, got %s", ev.Table)
	}
	if ev.Result != result {
		t.Errorf("Expected result %+v, got %+v", result, ev.Result)
	}
	if ev.CreatedAt.IsZero() || ev.CreatedAt.After(time.Now()) {
		t.Errorf("Unexpected creation time %v", ev.CreatedAt)
	}

	ev2 := NewRecognitionEvent("server", result)
	if ev.ID == ev2.ID {
		t.Error("Expected different event IDs for different events")
	}
}

func TestRecognitionEventJSON(t *testing.T) {
	r := recognizer.New(recognizer.BrowserTable(), nil)
	ev := NewRecognitionEvent("browser", r.Recognize("+48 691 234 567"))

	jsonData, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Failed to serialize RecognitionEvent: %v", err)
	}

	var jsonMap map[string]any
	if err := json.Unmarshal(jsonData, &jsonMap); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	for _, field := range []string{"id", "table", "result", "created_at"} {
		if _, exists := jsonMap[field]; !exists {
			t.Errorf("Required field %s missing from JSON", field)
		}
	}
	result := jsonMap["result"].(map[string]any)
	if result["operator"] != "Plus" || result["is_m2m"] != true || result["normalized"] != "691234567" {
		t.Errorf("Unexpected result payload %v", result)
	}
}

func TestRoutingKey(t *testing.T) {
	tests := []struct {
		result recognizer.RecognitionResult
		want   string
	}{
		{recognizer.RecognitionResult{Success: true, Operator: "Orange"}, "recognition.orange"},
		{recognizer.RecognitionResult{Success: true, Operator: "T-Mobile"}, "recognition.t-mobile"},
		{recognizer.RecognitionResult{Success: true, Operator: "Plus", IsM2M: true}, "recognition.plus.m2m"},
		{recognizer.RecognitionResult{Success: true, Operator: "Plus GSM / Polkomtel"}, "recognition.plus-gsm-polkomtel"},
		{recognizer.RecognitionResult{Success: true, Operator: "???"}, "recognition.unknown"},
		{recognizer.RecognitionResult{Success: false}, "recognition.invalid"},
	}
	for _, tt := range tests {
		ev := NewRecognitionEvent("server", tt.result)
		if got := ev.RoutingKey(); got != tt.want {
			t.Errorf("RoutingKey(%+v) = %q, want %q", tt.result, got, tt.want)
		}
	}
}
