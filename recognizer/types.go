// SPDX-License-Identifier: GPL-3.0-only

package recognizer

import "errors"

type ErrorKind string

const (
	NoError     ErrorKind = ""
	LengthError ErrorKind = "LENGTH"
	PrefixError ErrorKind = "PREFIX"
)

var (
	ErrInvalidLength = errors.New("invalid number length")
	ErrInvalidPrefix = errors.New("invalid number prefix")
)

const (
	UnknownOperator = "Unknown"
	M2MMessage      = "Machine to Machine (M2M) connection"
	ValidMessage    = "Valid Polish mobile number"
	LengthMessage   = "Polish mobile numbers must have exactly 9 digits"
)

// NumberLength is the digit count of a national Polish mobile number.
const NumberLength = 9

// CountryCode is stripped from the front of over-long inputs during normalization.
const CountryCode = "48"

// ValidationResult is the outcome of Validate. It never carries a Go error;
// use Err to get one for errors.Is comparisons.
type ValidationResult struct {
	Valid      bool      `json:"valid"`
	Kind       ErrorKind `json:"error,omitempty"`
	Message    string    `json:"message"`
	Normalized string    `json:"normalized"`
	Prefix     string    `json:"prefix,omitempty"`
}

func (v ValidationResult) Err() error {
	switch v.Kind {
	case LengthError:
		return ErrInvalidLength
	case PrefixError:
		return ErrInvalidPrefix
	default:
		return nil
	}
}

// RecognitionResult is the outcome of Recognize. On failure only Success,
// Kind, PhoneNumber and Message are populated.
type RecognitionResult struct {
	Success          bool      `json:"success"`
	Kind             ErrorKind `json:"error,omitempty"`
	PhoneNumber      string    `json:"phone_number"`
	Normalized       string    `json:"normalized,omitempty"`
	Prefix           string    `json:"prefix,omitempty"`
	Operator         string    `json:"operator,omitempty"`
	DetailedOperator string    `json:"detailed_operator,omitempty"`
	IsM2M            bool      `json:"is_m2m"`
	Message          string    `json:"message"`
}

// PrefixDatabase is the optional detailed prefix to operator label mapping.
type PrefixDatabase interface {
	Lookup(prefix string) (string, bool)
	Len() int
}
