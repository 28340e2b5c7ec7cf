// Package guard supervises a tea.Model tree. It renders its child until
// the child panics, captures the panic as a tagged Failure, and renders
// a fallback screen from then on. One-shot: a failed guard never resumes
// the child, no matter which phase the panic came from.
//
// This is the top-level crash boundary for failures outside the
// conversation engine; the engine itself recovers its own errors and
// should never trip it.
package guard

import (
	"fmt"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rs/zerolog"
)

// Failure is a captured crash: kind + message + structural trace, not a
// live panic value.
type Failure struct {
	Kind    string // "init", "update", or "view"
	Message string
	Trace   string
}

// Fallback renders the replacement screen for a captured failure.
type Fallback func(Failure) string

// latch holds the captured failure behind a pointer shared by every
// copy of the Model. bubbletea calls View on a value copy it then
// discards; writing through the latch is what makes a view-captured
// failure stick.
type latch struct {
	failure *Failure
}

// Model wraps a child tea.Model with panic supervision.
type Model struct {
	child    tea.Model
	latch    *latch
	fallback Fallback
	log      zerolog.Logger
}

// Wrap supervises child. A nil fallback gets DefaultFallback.
func Wrap(child tea.Model, fallback Fallback, log zerolog.Logger) Model {
	if fallback == nil {
		fallback = DefaultFallback
	}
	return Model{child: child, latch: &latch{}, fallback: fallback, log: log}
}

// Failed reports whether a failure has been captured.
func (m Model) Failed() bool { return m.latch.failure != nil }

// Init runs the child's Init under supervision.
func (m Model) Init() tea.Cmd {
	if m.latch.failure != nil {
		return nil
	}
	var cmd tea.Cmd
	if f := capture("init", func() { cmd = m.child.Init() }); f != nil {
		m.trip(f)
		return nil
	}
	return cmd
}

// Update runs the child's Update under supervision. Once failed, only
// quit keys are handled; everything else is swallowed.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.latch.failure != nil {
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "ctrl+c", "q", "esc", "enter":
				return m, tea.Quit
			}
		}
		return m, nil
	}
	var (
		next tea.Model
		cmd  tea.Cmd
	)
	if f := capture("update", func() { next, cmd = m.child.Update(msg) }); f != nil {
		m.trip(f)
		return m, nil
	}
	m.child = next
	return m, cmd
}

// View renders the child under supervision, or the fallback once failed.
// A panicking View trips the latch like any other phase; the child View
// is never re-entered afterwards.
func (m Model) View() string {
	if m.latch.failure != nil {
		return m.fallback(*m.latch.failure)
	}
	var out string
	if f := capture("view", func() { out = m.child.View() }); f != nil {
		m.trip(f)
		return m.fallback(*f)
	}
	return out
}

// trip records the first failure; later captures cannot happen because
// every entry point checks the latch before touching the child.
func (m Model) trip(f *Failure) {
	m.latch.failure = f
	m.log.Error().
		Str("kind", f.Kind).
		Str("message", f.Message).
		Msg("ui crash captured")
	m.log.Debug().Str("trace", f.Trace).Msg("crash trace")
}

// capture runs fn, converting a panic into a Failure.
func capture(kind string, fn func()) (failure *Failure) {
	defer func() {
		if r := recover(); r != nil {
			failure = &Failure{
				Kind:    kind,
				Message: fmt.Sprint(r),
				Trace:   string(debug.Stack()),
			}
		}
	}()
	fn()
	return nil
}

// DefaultFallback is the stock crash screen.
func DefaultFallback(f Failure) string {
	return fmt.Sprintf(
		"\n  The display hit an unexpected error (%s: %s).\n"+
			"  Your conversation is gone, sorry. Press q to exit and restart the app.\n",
		f.Kind, f.Message,
	)
}
