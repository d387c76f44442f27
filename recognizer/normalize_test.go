// SPDX-License-Identifier: GPL-3.0-only

package recognizer

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "501234567", want: "501234567"},
		{name: "formatted with country code", input: "+48 501-234-567", want: "501234567"},
		{name: "parentheses", input: "(+48) 501 234 567", want: "501234567"},
		{name: "country code without plus", input: "48501234567", want: "501234567"},
		{name: "nine digits starting with 48", input: "481234567", want: "481234567"},
		{name: "empty", input: "", want: ""},
		{name: "no digits", input: "abc - ()", want: ""},
		{name: "too long passes through", input: "5012345678901", want: "5012345678901"},
		{name: "unicode noise", input: "tel: ５０1 234 567", want: "1234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeDigitsOnlyAndIdempotent(t *testing.T) {
	inputs := []string{
		"+48 501-234-567", "501234567", "48 48 123 45 67", "0048501234567",
		"phone: 600 700 800", "+", "4", "48", "480000000000", "", "++48--211",
	}
	for _, input := range inputs {
		once := Normalize(input)
		for _, r := range once {
			if r < '0' || r > '9' {
				t.Errorf("Normalize(%q) = %q contains non-digit %q", input, once, r)
			}
		}
		if len(once) <= 11 {
			if twice := Normalize(once); twice != once {
				t.Errorf("Normalize not idempotent for %q: %q then %q", input, once, twice)
			}
		}
	}
}
