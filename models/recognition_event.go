// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"strings"
	"time"

	"plmobile-server/recognizer"

	"github.com/google/uuid"
)

// RecognitionEvent is the message published for each recognition.
type RecognitionEvent struct {
	// ID is the unique event identifier
	ID string `json:"id"`
	// Table is the prefix table preset that produced the result
	Table string `json:"table"`
	// Result is the recognition outcome
	Result recognizer.RecognitionResult `json:"result"`
	// Timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

func NewRecognitionEvent(table string, result recognizer.RecognitionResult) *RecognitionEvent {
	return &RecognitionEvent{
		ID:        uuid.New().String(),
		Table:     table,
		Result:    result,
		CreatedAt: time.Now(),
	}
}

// RoutingKey is recognition.<operator> for recognized numbers, with an .m2m
// suffix for M2M prefixes, and recognition.invalid otherwise.
func (e *RecognitionEvent) RoutingKey() string {
	if !e.Result.Success {
		return "recognition.invalid"
	}
	key := "recognition." + slug(e.Result.Operator)
	if e.Result.IsM2M {
		key += ".m2m"
	}
	return key
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "-"):
			b.WriteByte('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "unknown"
	}
	return out
}
