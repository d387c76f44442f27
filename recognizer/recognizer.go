// SPDX-License-Identifier: GPL-3.0-only

// Package recognizer validates Polish mobile numbers and resolves their
// network operator from a prefix table and an optional detailed prefix
// database. A Recognizer holds no mutable state and may be shared freely.
package recognizer

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

type Recognizer struct {
	table *Table
	db    PrefixDatabase
}

// New builds a Recognizer over table. A nil table selects the server preset;
// db may be nil when no detailed database is available.
func New(table *Table, db PrefixDatabase) *Recognizer {
	if table == nil {
		table = serverTable
	}
	if db != nil && db.Len() == 0 {
		db = nil
	}
	return &Recognizer{table: table, db: db}
}

func (r *Recognizer) Table() *Table {
	return r.table
}

func (r *Recognizer) HasDetailedDatabase() bool {
	return r.db != nil
}

func (r *Recognizer) Normalize(input string) string {
	return Normalize(input)
}

func (r *Recognizer) Validate(input string) ValidationResult {
	normalized := Normalize(input)

	if len(normalized) != NumberLength {
		return ValidationResult{
			Kind:       LengthError,
			Message:    LengthMessage,
			Normalized: normalized,
		}
	}

	prefix := normalized[:2]
	if !r.table.IsValid(prefix) {
		return ValidationResult{
			Kind:       PrefixError,
			Message:    fmt.Sprintf("Invalid prefix: %s. Valid prefixes are: %s", prefix, strings.Join(r.table.ValidPrefixes(), ", ")),
			Normalized: normalized,
			Prefix:     prefix,
		}
	}

	return ValidationResult{
		Valid:      true,
		Message:    ValidMessage,
		Normalized: normalized,
		Prefix:     prefix,
	}
}

func (r *Recognizer) Recognize(input string) RecognitionResult {
	validation := r.Validate(input)
	if !validation.Valid {
		return RecognitionResult{
			Kind:        validation.Kind,
			PhoneNumber: input,
			Message:     validation.Message,
		}
	}

	normalized := validation.Normalized
	prefix := validation.Prefix
	operator := r.table.Operator(prefix)
	isM2M := r.table.IsM2M(prefix)

	message := "Operator: " + operator
	if isM2M {
		message = M2MMessage
	}

	return RecognitionResult{
		Success:          true,
		PhoneNumber:      input,
		Normalized:       normalized,
		Prefix:           prefix,
		Operator:         operator,
		DetailedOperator: r.detailedOperator(normalized),
		IsM2M:            isM2M,
		Message:          message,
	}
}

// detailedOperator probes the database with the full number first, then
// shorter prefixes down to two digits.
func (r *Recognizer) detailedOperator(normalized string) string {
	if r.db == nil {
		return ""
	}
	for i := len(normalized); i >= 2; i-- {
		if label, ok := r.db.Lookup(normalized[:i]); ok {
			return label
		}
	}
	return ""
}

func (r *Recognizer) RecognizeBatch(inputs []string) []RecognitionResult {
	results := make([]RecognitionResult, len(inputs))
	for i, input := range inputs {
		results[i] = r.Recognize(input)
	}
	return results
}

// RecognizeBatchConcurrent recognizes inputs on at most limit goroutines.
// Results keep input order and match RecognizeBatch element for element.
func (r *Recognizer) RecognizeBatchConcurrent(ctx context.Context, inputs []string, limit int) ([]RecognitionResult, error) {
	results := make([]RecognitionResult, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := range inputs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.Recognize(inputs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Recognizer) Format(input string, style Style) string {
	return Format(input, style)
}

// IsM2M reports whether the first two normalized digits fall in the table's
// M2M set. The length of the number is not checked.
func (r *Recognizer) IsM2M(input string) bool {
	normalized := Normalize(input)
	if len(normalized) < 2 {
		return false
	}
	return r.table.IsM2M(normalized[:2])
}

func (r *Recognizer) OperatorForPrefix(prefix string) string {
	return r.table.Operator(prefix)
}

func (r *Recognizer) ValidPrefixes() []string {
	return r.table.ValidPrefixes()
}

func (r *Recognizer) OperatorPrefixes() []OperatorPrefixes {
	return r.table.Operators()
}
