package report

import (
	"strings"

	"github.com/matforge/forge-tui/client"
)

// DefaultFailurePhrases are the backend's known error strings. A reply
// containing any of them is a failure even when it arrived with OK=true;
// the backend wraps pipeline errors in successful HTTP exchanges.
// Matching is case-sensitive substring. Overridable via config.
var DefaultFailurePhrases = []string{
	"An unexpected error occurred",
	"Error formatting output",
	"Traceback (most recent call last",
	"Internal Server Error",
}

// Fixed user-facing notices. The two are deliberately distinct: one asks
// the user to wait out a service problem, the other asks them to fix
// their input.
const (
	// FailureNotice replaces any failed reply. It never leaks the raw
	// backend error.
	FailureNotice = "Sorry — the analysis service ran into a technical issue. " +
		"Please verify the chemical formula and try again, or try a simpler compound."

	// UnknownMaterialNotice replaces replies that succeeded but carried
	// no usable content.
	UnknownMaterialNotice = "I couldn't identify that material. " +
		"Double-check the formula (for example NaCl or Fe2O3) and try again."

	// RenderFailureNotice is appended by the submission pipeline's
	// last-resort recover; it is not produced by Classify.
	RenderFailureNotice = "Something went wrong while displaying the reply. " +
		"Please restart the app and try again."
)

// Verdict is the classifier's decision for one adapter result.
type Verdict struct {
	Failure bool
	Text    string
}

// Classify decides whether an adapter result is a legitimate report or a
// failure disguised as content. phrases is the failure-phrase set; nil
// selects DefaultFailurePhrases. Deterministic: identical input always
// yields an identical verdict.
func Classify(res client.AnalyzeResult, phrases []string) Verdict {
	if phrases == nil {
		phrases = DefaultFailurePhrases
	}
	if !res.OK || containsAny(res.Text, phrases) {
		return Verdict{Failure: true, Text: FailureNotice}
	}
	s := Sanitize(res.Text)
	if s == "" || s == "{}" {
		return Verdict{Failure: false, Text: UnknownMaterialNotice}
	}
	return Verdict{Failure: false, Text: s}
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if p != "" && strings.Contains(s, p) {
			return true
		}
	}
	return false
}
