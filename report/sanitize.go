// Package report turns raw backend replies into user-presentable text:
// sanitization of internal diagnostics and numeric noise, and
// classification of replies into reports versus failures dressed up as
// content.
package report

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// stepMarker matches internal pipeline diagnostics that occasionally
	// leak into the streamed report: numbered step headers and
	// bracket-tagged log lines ("[API] ...", "[PIPELINE] ...").
	stepMarker = regexp.MustCompile(`(?m)^(?:Step \d+[:.].*|\[(?:API|PIPELINE|DEBUG)\].*)\n?`)

	leadingBlank = regexp.MustCompile(`\A(?:[ \t]*\n)+`)

	// longDecimal matches decimals with 5 or more fractional digits.
	// The backend formats everything to 4 places; anything longer came
	// from an unformatted code path.
	longDecimal = regexp.MustCompile(`\d+\.\d{5,}`)
)

// Sanitize strips step-marker lines, leading blank lines, and surrounding
// whitespace, then rounds over-precise decimals to 4 fractional digits.
// It is a pure function and idempotent: sanitizing already-sanitized
// text is a no-op.
func Sanitize(raw string) string {
	s := stepMarker.ReplaceAllString(raw, "")
	s = leadingBlank.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = longDecimal.ReplaceAllStringFunc(s, roundDecimal)
	return s
}

// roundDecimal rounds a matched decimal literal to 4 fractional digits.
// Numeric rounding, not string truncation: 4.378412 becomes 4.3784,
// 1.99999 becomes 2.0000.
func roundDecimal(match string) string {
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return match
	}
	return strconv.FormatFloat(f, 'f', 4, 64)
}
