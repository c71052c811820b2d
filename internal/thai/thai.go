// Package thai provides helpers for Thai-script text and the Buddhist Era calendar.
package thai

import (
	"regexp"
	"strconv"
)

// Thai script occupies U+0E00..U+0E7F.
const (
	blockStart = '\u0E00'
	blockEnd   = '\u0E7F'
)

// BuddhistEraOffset is added to a Gregorian year to obtain the Buddhist Era year.
const BuddhistEraOffset = 543

// Gregorian years outside this range are not converted.
const (
	minConvertibleYear = 1900
	maxConvertibleYear = 2100
)

// NoDate is the Thai "n.d." marker (ไม่ปรากฏปีที่พิมพ์).
const NoDate = "ม.ป.ป."

var fourDigitYear = regexp.MustCompile(`^\d{4}$`)

// IsThai reports whether s contains at least one Thai-script code point.
func IsThai(s string) bool {
	for _, r := range s {
		if r >= blockStart && r <= blockEnd {
			return true
		}
	}
	return false
}

// AnyThai reports whether any of the given strings contains Thai script.
func AnyThai(values ...string) bool {
	for _, v := range values {
		if IsThai(v) {
			return true
		}
	}
	return false
}

// ConvertToThaiYear converts a four-digit Gregorian year in [1900, 2100] to
// the Buddhist Era. Anything else is returned unchanged.
func ConvertToThaiYear(year string) string {
	if !fourDigitYear.MatchString(year) {
		return year
	}
	n, err := strconv.Atoi(year)
	if err != nil || n < minConvertibleYear || n > maxConvertibleYear {
		return year
	}
	return strconv.Itoa(n + BuddhistEraOffset)
}
