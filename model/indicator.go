package model

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matforge/forge-tui/msg"
	"github.com/matforge/forge-tui/style"
)

// Indicator timing: the glyph advances every 80ms, the status phrase
// every 800ms. Both cycles are cosmetic.
const (
	GlyphInterval  = 80 * time.Millisecond
	PhraseInterval = 800 * time.Millisecond
)

// glyphFrames is the fixed ordered spinner frame set.
var glyphFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// phrases is the fixed ordered status-message set, mirroring the
// backend pipeline stages.
var phrases = []string{
	"Looking up material data…",
	"Validating chemistry…",
	"Matching design rules…",
	"Scoring hypotheses…",
	"Formatting the report…",
}

// IndicatorModel renders the busy indicator: a cycling glyph and a
// cycling status phrase. The two cycles are independent repeating tasks
// owned by this model's lifecycle — Start launches them, Stop cancels
// them. Cancellation works by generation: every Start bumps gen, and
// ticks carrying a stale generation are dropped, so stopped cycles are
// torn down rather than left running.
type IndicatorModel struct {
	active bool
	gen    int
	frame  int
	phrase int
}

// NewIndicator returns an inactive indicator.
func NewIndicator() IndicatorModel {
	return IndicatorModel{}
}

// Active reports whether the indicator is running.
func (m IndicatorModel) Active() bool { return m.active }

// Start resets both cycles and returns the commands that drive them.
func (m *IndicatorModel) Start() tea.Cmd {
	m.active = true
	m.gen++
	m.frame = 0
	m.phrase = 0
	return tea.Batch(glyphTick(m.gen), phraseTick(m.gen))
}

// Stop deactivates the indicator and invalidates in-flight ticks.
func (m *IndicatorModel) Stop() {
	m.active = false
	m.gen++
	m.frame = 0
	m.phrase = 0
}

// Update advances the cycles. Ticks from a cancelled run are dropped
// without rescheduling, which is what ends the repeating task.
func (m IndicatorModel) Update(teaMsg tea.Msg) (IndicatorModel, tea.Cmd) {
	switch v := teaMsg.(type) {
	case msg.GlyphTick:
		if !m.active || v.Gen != m.gen {
			return m, nil
		}
		m.frame = (m.frame + 1) % len(glyphFrames)
		return m, glyphTick(m.gen)
	case msg.PhraseTick:
		if !m.active || v.Gen != m.gen {
			return m, nil
		}
		m.phrase = (m.phrase + 1) % len(phrases)
		return m, phraseTick(m.gen)
	}
	return m, nil
}

// View renders the indicator line. Returns "" when inactive.
func (m IndicatorModel) View() string {
	if !m.active {
		return ""
	}
	return style.SpinnerStyle.Render(glyphFrames[m.frame]) + " " + style.Faint.Render(phrases[m.phrase])
}

func glyphTick(gen int) tea.Cmd {
	return tea.Tick(GlyphInterval, func(time.Time) tea.Msg { return msg.GlyphTick{Gen: gen} })
}

func phraseTick(gen int) tea.Cmd {
	return tea.Tick(PhraseInterval, func(time.Time) tea.Msg { return msg.PhraseTick{Gen: gen} })
}
