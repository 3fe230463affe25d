// =============================================================================
// POS Billing - Tax Row Checksum
// =============================================================================
//
// Every exported tax row carries a structural checksum: the number of
// characters in the row's concatenated values that are an upper-case letter,
// a lower-case letter, a decimal digit or a period. It catches truncated or
// hand-edited rows in an audit. It is NOT a cryptographic digest.
//
// VALUE TEXT:
//   The checksum is computed over canonical value text, so the same row
//   always yields the same number:
//     - strings as is                         "0001", "SKU1"
//     - integers in base 10                   "3"
//     - floats as the shortest round-trip
//       decimal with a fractional part        "1.0", "2.5", "6.0"
//     - floats outside [1e-4, 1e16) in
//       exponent form                         "1e+16", "1.5e-05"
//
// EXAMPLE:
//   "0001" "SKU1" "1.0" "0.0" "2.0" "3" "6.0"
//   -> "0001SKU11.00.02.036.0" -> 21
//
// =============================================================================

package taxexport

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Checksum counts the letters, digits and periods in data.
//
// Letters are counted by case property, not only by category:
// Other_Uppercase (Ⅰ) and Other_Lowercase (ª) count as well.
func Checksum(data string) int {
	count := 0
	for _, r := range data {
		switch {
		case isUpper(r), isLower(r), unicode.IsDigit(r), r == '.':
			count++
		}
	}
	return count
}

func isUpper(r rune) bool {
	return unicode.IsUpper(r) || unicode.Is(unicode.Other_Uppercase, r)
}

func isLower(r rune) bool {
	return unicode.IsLower(r) || unicode.Is(unicode.Other_Lowercase, r)
}

// FormatFloat renders f as canonical value text.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatInt renders n as canonical value text.
func FormatInt(n int) string {
	return strconv.Itoa(n)
}
