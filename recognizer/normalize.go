// SPDX-License-Identifier: GPL-3.0-only

package recognizer

import "strings"

// Normalize drops every non-digit character and strips a leading country
// code when the remaining digits are longer than a national number.
func Normalize(input string) string {
	if input == "" {
		return ""
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, input)

	if strings.HasPrefix(digits, CountryCode) && len(digits) > NumberLength {
		digits = digits[len(CountryCode):]
	}
	return digits
}
