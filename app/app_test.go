package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matforge/forge-tui/client"
	"github.com/matforge/forge-tui/model"
	"github.com/matforge/forge-tui/msg"
	"github.com/matforge/forge-tui/report"
)

func newIdleModel() Model {
	c := client.New("http://localhost:0", zerolog.Nop())
	m := New(c, nil, zerolog.Nop())
	m.state = StateIdle
	return m
}

func pressEnter(m Model) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func TestSubmitAppendsExactlyOneUserTurnBeforeNetwork(t *testing.T) {
	m := newIdleModel()
	m.input.SetValue("  NaCl  ")

	// The Enter handler runs synchronously; the returned command is the
	// not-yet-executed network call.
	m, cmd := pressEnter(m)
	require.NotNil(t, cmd)

	turns := m.Conversation().Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, model.RoleUser, turns[0].Role)
	assert.Equal(t, "NaCl", turns[0].Content, "content is the trimmed input")
	assert.True(t, m.Conversation().Busy())
	assert.Equal(t, StateBusy, m.State())
}

func TestSubmitWhileBusyIsNoOp(t *testing.T) {
	m := newIdleModel()
	m.input.SetValue("NaCl")
	m, _ = pressEnter(m)
	require.Equal(t, 1, m.Conversation().Len())

	// Second submission while the request is in flight: no turn, no
	// second request.
	m.input.SetValue("Fe2O3")
	m, cmd := pressEnter(m)
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.Conversation().Len())
}

func TestSubmitEmptyOrBlankIsIgnored(t *testing.T) {
	for _, input := range []string{"", "   ", "\t"} {
		m := newIdleModel()
		m.input.SetValue(input)
		m, cmd := pressEnter(m)
		assert.Nil(t, cmd, "input %q", input)
		assert.Zero(t, m.Conversation().Len(), "input %q", input)
	}
}

func TestSubmitWhileConnectingIsIgnored(t *testing.T) {
	c := client.New("http://localhost:0", zerolog.Nop())
	m := New(c, nil, zerolog.Nop())
	require.Equal(t, StateConnecting, m.State())

	m.input.SetValue("NaCl")
	m, cmd := pressEnter(m)
	assert.Nil(t, cmd)
	assert.Zero(t, m.Conversation().Len())
}

func TestAnalyzeDoneBeginsReveal(t *testing.T) {
	m := newIdleModel()
	m.input.SetValue("NaCl")
	m, _ = pressEnter(m)

	next, cmd := m.Update(msg.AnalyzeDone{OK: true, Text: "hi there"})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, StateRevealing, m.State())

	turns := m.Conversation().Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, model.RoleAssistant, turns[1].Role)
	assert.Empty(t, turns[1].Content, "assistant turn is created empty")
	assert.True(t, turns[1].Streaming())
	assert.False(t, m.Conversation().Busy(), "busy clears when rendering starts, not when it finishes")
}

func TestRevealRunsToCompletion(t *testing.T) {
	m := newIdleModel()
	m.input.SetValue("NaCl")
	m, _ = pressEnter(m)
	next, _ := m.Update(msg.AnalyzeDone{OK: true, Text: "one two  three"})
	m = next.(Model)
	gen := m.revealGen

	for i := 0; i < 100 && m.State() == StateRevealing; i++ {
		next, _ = m.Update(msg.RevealStep{Gen: gen})
		m = next.(Model)
	}
	require.Equal(t, StateIdle, m.State())

	final := m.Conversation().Turns()[1]
	assert.Equal(t, "one two  three", final.Content, "round-trip: revealed content equals the full text")
	assert.False(t, final.Streaming())
}

func TestStaleRevealStepsAreDropped(t *testing.T) {
	m := newIdleModel()
	m.input.SetValue("NaCl")
	m, _ = pressEnter(m)
	next, _ := m.Update(msg.AnalyzeDone{OK: true, Text: "a b"})
	m = next.(Model)

	next, cmd := m.Update(msg.RevealStep{Gen: m.revealGen - 1})
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Empty(t, m.Conversation().Turns()[1].Content)
}

func TestEmptyReplyCompletesImmediately(t *testing.T) {
	m := newIdleModel()
	m.input.SetValue("NaCl")
	m, _ = pressEnter(m)

	next, _ := m.Update(msg.AnalyzeDone{OK: true, Text: ""})
	m = next.(Model)
	assert.Equal(t, StateIdle, m.State())
	require.Equal(t, 2, m.Conversation().Len())
	assert.False(t, m.Conversation().Turns()[1].Streaming())
}

func TestSubmitDuringRevealIsDisabled(t *testing.T) {
	m := newIdleModel()
	m.input.SetValue("NaCl")
	m, _ = pressEnter(m)
	next, _ := m.Update(msg.AnalyzeDone{OK: true, Text: "long reply"})
	m = next.(Model)
	require.Equal(t, StateRevealing, m.State())

	m.input.SetValue("Fe2O3")
	m, cmd := pressEnter(m)
	assert.Nil(t, cmd)
	assert.Equal(t, 2, m.Conversation().Len())
}

func TestTurnPanickedAppendsFallbackTurn(t *testing.T) {
	m := newIdleModel()
	m.input.SetValue("NaCl")
	m, _ = pressEnter(m)

	next, _ := m.Update(msg.TurnPanicked{Value: "boom"})
	m = next.(Model)
	assert.Equal(t, StateIdle, m.State())
	assert.False(t, m.Conversation().Busy())

	turns := m.Conversation().Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, model.RoleAssistant, turns[1].Role)
	assert.Equal(t, report.RenderFailureNotice, turns[1].Content)
	assert.False(t, turns[1].Streaming())
}

func TestAnalyzeCmdClassifiesFailurePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("# Error\n\nAn unexpected error occurred:\n\n```\nboom\n```"))
	}))
	defer srv.Close()

	m := New(client.New(srv.URL, zerolog.Nop()), nil, zerolog.Nop())
	result := m.analyze("NaCl")()
	done, ok := result.(msg.AnalyzeDone)
	require.True(t, ok)
	assert.False(t, done.OK)
	assert.Equal(t, report.FailureNotice, done.Text)
}

func TestAnalyzeCmdSanitizesSuccessPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[API] Starting pipeline for: NaCl\n# Report\n\nBand gap: 4.378412 eV"))
	}))
	defer srv.Close()

	m := New(client.New(srv.URL, zerolog.Nop()), nil, zerolog.Nop())
	result := m.analyze("NaCl")()
	done, ok := result.(msg.AnalyzeDone)
	require.True(t, ok)
	assert.True(t, done.OK)
	assert.Contains(t, done.Text, "4.3784")
	assert.NotContains(t, done.Text, "[API]")
}

func TestMouseWheelScrollsAndUnpins(t *testing.T) {
	m := newIdleModel()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	m = next.(Model)

	// Enough transcript to scroll well past the bottom tolerance.
	for i := 0; i < 3; i++ {
		m.conv.AddUserTurn(strings.Repeat("line\n", 40))
		m.conv.BeginAssistantTurn()
		m.conv.FinalizeAssistantTurn()
	}
	m.chat.Refresh()
	require.True(t, m.chat.Pinned())

	wheelUp := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}
	for i := 0; i < 60 && m.chat.Pinned(); i++ {
		next, _ = m.Update(wheelUp)
		m = next.(Model)
	}
	assert.False(t, m.chat.Pinned(), "wheel events must reach the viewport and recompute pinning")
}

func TestHealthFailureSchedulesRetry(t *testing.T) {
	c := client.New("http://localhost:0", zerolog.Nop())
	m := New(c, nil, zerolog.Nop())

	next, cmd := m.Update(msg.HealthResult{Err: assert.AnError})
	m = next.(Model)
	assert.Equal(t, StateConnecting, m.State())
	require.NotNil(t, cmd, "a retry must be scheduled")
}

func TestHealthSuccessEntersIdle(t *testing.T) {
	c := client.New("http://localhost:0", zerolog.Nop())
	m := New(c, nil, zerolog.Nop())

	next, _ := m.Update(msg.HealthResult{Status: "ok", Version: "1.2.0"})
	m = next.(Model)
	assert.Equal(t, StateIdle, m.State())
}
