// SPDX-License-Identifier: GPL-3.0-only

package recognizer

type Style string

const (
	Standard      Style = "standard"
	Spaced        Style = "spaced"
	International Style = "international"
)

// ParseStyle maps a style name to a Style. Names match exactly; anything
// else, including other capitalizations, becomes Standard.
func ParseStyle(name string) Style {
	switch Style(name) {
	case Spaced:
		return Spaced
	case International:
		return International
	default:
		return Standard
	}
}

// Format renders input in the given style. Inputs that do not normalize to a
// national number are returned untouched.
func Format(input string, style Style) string {
	normalized := Normalize(input)
	if len(normalized) != NumberLength {
		return input
	}

	grouped := normalized[:3] + " " + normalized[3:6] + " " + normalized[6:]
	switch style {
	case International:
		return "+" + CountryCode + " " + grouped
	case Spaced:
		return grouped
	default:
		return normalized
	}
}
