// SPDX-License-Identifier: GPL-3.0-only

package recognizer

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		input string
		style Style
		want  string
	}{
		{"501234567", International, "+48 501 234 567"},
		{"501234567", Spaced, "501 234 567"},
		{"501234567", Standard, "501234567"},
		{"+48 501-234-567", Standard, "501234567"},
		{"+48 501-234-567", Style("fancy"), "501234567"},
		{"50123456", International, "50123456"},
		{"50-12-34", Spaced, "50-12-34"},
		{"", International, ""},
	}

	for _, tt := range tests {
		if got := Format(tt.input, tt.style); got != tt.want {
			t.Errorf("Format(%q, %s) = %q, want %q", tt.input, tt.style, got, tt.want)
		}
	}

	r := New(nil, nil)
	if got := r.Format("211234567", International); got != "+48 211 234 567" {
		t.Errorf("Recognizer.Format = %q", got)
	}
}

func TestParseStyle(t *testing.T) {
	tests := map[string]Style{
		"international": International,
		"spaced":        Spaced,
		"standard":      Standard,
		"":              Standard,
		"unknown":       Standard,
		"International": Standard,
		" spaced ":      Standard,
		"SPACED":        Standard,
	}
	for name, want := range tests {
		if got := ParseStyle(name); got != want {
			t.Errorf("ParseStyle(%q) = %q, want %q", name, got, want)
		}
	}
}
