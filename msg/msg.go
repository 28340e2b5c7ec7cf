// Package msg defines the tea.Msg types dispatched within the forge TUI.
// It has no upstream imports (client, model) to avoid import cycles.
package msg

// -- Lifecycle --

// HealthResult from the initial GET /health check.
type HealthResult struct {
	Status  string
	Version string
	Err     error
}

// RetryHealth re-triggers the health check after a failed attempt.
type RetryHealth struct{}

// -- Analysis turn --

// AnalyzeDone when the backend adapter has produced a result for the
// in-flight request. Failure is already folded into the fields; there is
// no error to propagate.
type AnalyzeDone struct {
	OK   bool
	Text string
	Err  string
}

// TurnPanicked when post-adapter turn processing panicked and was
// recovered at the submission pipeline.
type TurnPanicked struct {
	Value any
}

// -- Reveal --

// RevealStep advances the simulated stream by one chunk. Gen identifies
// the reveal it belongs to; stale steps are dropped.
type RevealStep struct {
	Gen int
}

// -- Loading indicator --

// GlyphTick advances the indicator's spinner frame.
type GlyphTick struct {
	Gen int
}

// PhraseTick advances the indicator's status phrase.
type PhraseTick struct {
	Gen int
}
