// Package app holds the root state machine of the forge TUI: submit
// gating, the analyze round-trip, reveal scheduling, and the last-resort
// recovery that keeps every failure inside the conversation history.
package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/matforge/forge-tui/client"
	"github.com/matforge/forge-tui/model"
	"github.com/matforge/forge-tui/msg"
	"github.com/matforge/forge-tui/report"
	"github.com/matforge/forge-tui/stream"
	"github.com/matforge/forge-tui/style"
)

const healthRetryInterval = 5 * time.Second

// Model is the root tea.Model.
type Model struct {
	banner    model.BannerModel
	chat      model.ChatModel
	input     model.InputModel
	indicator model.IndicatorModel
	status    model.StatusModel

	conv    *model.Conversation
	state   State
	client  *client.Client
	phrases []string // failure-phrase set for the classifier

	revealer  *stream.Revealer
	revealGen int

	sessionID   string
	width       int
	height      int
	keys        KeyMap
	confirmQuit bool
	log         zerolog.Logger
}

// New constructs the root model. phrases overrides the classifier's
// failure-phrase set; nil keeps the defaults.
func New(c *client.Client, phrases []string, log zerolog.Logger) Model {
	conv := model.NewConversation()
	return Model{
		banner:    model.NewBanner(c.BaseURL),
		chat:      model.NewChat(conv, 80, 20),
		input:     model.NewInput(),
		indicator: model.NewIndicator(),
		status:    model.NewStatus(),
		conv:      conv,
		state:     StateConnecting,
		client:    c,
		phrases:   phrases,
		sessionID: uuid.NewString(),
		width:     80,
		height:    24,
		keys:      DefaultKeyMap(),
		log:       log,
	}
}

// Conversation exposes the store for tests.
func (m Model) Conversation() *model.Conversation { return m.conv }

// State exposes the current state for tests.
func (m Model) State() State { return m.state }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.checkHealth(), tea.WindowSize())
}

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := rawMsg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.chat.SetSize(v.Width, m.chatHeight())
		m.input.SetWidth(v.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(v)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(v)
		m.status.SetUnpinned(!m.chat.Pinned())
		return m, cmd

	case msg.HealthResult:
		return m.handleHealth(v)

	case msg.RetryHealth:
		return m, m.checkHealth()

	case msg.AnalyzeDone:
		return m.handleAnalyzeDone(v)

	case msg.TurnPanicked:
		return m.handleTurnPanicked(v)

	case msg.RevealStep:
		return m.handleRevealStep(v)

	case msg.GlyphTick, msg.PhraseTick:
		var cmd tea.Cmd
		m.indicator, cmd = m.indicator.Update(rawMsg)
		if m.indicator.Active() {
			m.chat.SetIndicatorView(m.indicator.View())
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.state == StateConnecting {
		return m.renderConnecting()
	}
	var sections []string
	sections = append(sections, m.banner.View())
	sections = append(sections, m.chat.View())
	sections = append(sections, m.status.View())
	sections = append(sections, m.input.View())
	if m.confirmQuit {
		sections = append(sections, style.Hint.Render("  Press Ctrl+C again to quit, or any key to cancel."))
	}
	return strings.Join(sections, "\n")
}

// -- Key handling --

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmQuit {
		if key.Matches(k, m.keys.Cancel) {
			return m, tea.Quit
		}
		m.confirmQuit = false
		return m, nil
	}

	switch {
	case key.Matches(k, m.keys.Cancel):
		if m.input.Value() == "" {
			m.confirmQuit = true
			return m, nil
		}
		m.input.Reset()
		return m, nil
	case key.Matches(k, m.keys.QuitEOF):
		if m.input.Value() == "" {
			return m, tea.Quit
		}
	case key.Matches(k, m.keys.Escape):
		m.input.Reset()
		return m, nil
	case key.Matches(k, m.keys.ScrollTop):
		m.chat.ScrollToTop()
		m.status.SetUnpinned(!m.chat.Pinned())
		return m, nil
	case key.Matches(k, m.keys.ScrollBottom):
		m.chat.ScrollToBottom()
		m.status.SetUnpinned(!m.chat.Pinned())
		return m, nil
	case key.Matches(k, m.keys.PageUp), key.Matches(k, m.keys.PageDown):
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(k)
		m.status.SetUnpinned(!m.chat.Pinned())
		return m, cmd
	case key.Matches(k, m.keys.Submit):
		return m.handleSubmit()
	}

	if m.state == StateConnecting {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(k)
	return m, cmd
}

// handleSubmit starts a new turn. Submission is accepted only when idle:
// while a request is in flight the busy flag rejects it, and while a
// reveal is running Enter stays disabled even though the input text is
// editable again.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.state != StateIdle || m.conv.Busy() {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	if m.conv.AddUserTurn(text) == nil {
		return m, nil
	}
	m.input.Submit(text)
	m.input.Blur()
	m.chat.OnSubmit()
	m.status.SetBusy(true)
	m.status.SetUnpinned(false)
	m.state = StateBusy
	m.log.Info().Str("session", m.sessionID).Str("material", text).Msg("turn submitted")
	startTicks := m.indicator.Start()
	m.chat.SetIndicatorView(m.indicator.View())
	return m, tea.Batch(m.analyze(text), startTicks)
}

// -- Turn lifecycle --

// analyze runs the adapter call and classification off the UI loop. Any
// panic in post-adapter processing is recovered here and surfaced as a
// TurnPanicked message, never as a crash.
func (m Model) analyze(text string) tea.Cmd {
	c := m.client
	phrases := m.phrases
	return func() (teaMsg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				teaMsg = msg.TurnPanicked{Value: r}
			}
		}()
		res := c.Analyze(text)
		verdict := report.Classify(res, phrases)
		return msg.AnalyzeDone{OK: !verdict.Failure, Text: verdict.Text, Err: res.Err}
	}
}

// handleAnalyzeDone moves from Busy to Revealing: the assistant turn is
// created empty, the busy flag clears (input usable again), and the
// first reveal step is scheduled. The displayed text is already
// classified — failures arrive here as fixed notices.
func (m Model) handleAnalyzeDone(r msg.AnalyzeDone) (tea.Model, tea.Cmd) {
	if m.state != StateBusy {
		return m, nil
	}
	if !r.OK {
		m.log.Warn().Str("err", r.Err).Msg("turn failed")
	}
	m.indicator.Stop()
	m.chat.SetIndicatorView("")
	m.status.SetBusy(false)
	m.conv.BeginAssistantTurn()
	m.chat.Refresh()
	focusCmd := m.input.Focus()

	m.revealer = stream.NewRevealer(r.Text)
	m.revealGen++
	if m.revealer.Done() {
		// Empty reply: zero chunks, completes immediately.
		m.conv.FinalizeAssistantTurn()
		m.state = StateIdle
		return m, focusCmd
	}
	m.state = StateRevealing
	return m, tea.Batch(focusCmd, revealStep(m.revealGen))
}

// handleRevealStep discloses one chunk. Chunks advance strictly in
// sequence; a step from a superseded reveal is dropped.
func (m Model) handleRevealStep(v msg.RevealStep) (tea.Model, tea.Cmd) {
	if m.state != StateRevealing || v.Gen != m.revealGen || m.revealer == nil {
		return m, nil
	}
	partial := m.revealer.Step()
	m.conv.SetStreamingContent(partial)
	m.chat.Refresh()
	if m.revealer.Done() {
		m.conv.FinalizeAssistantTurn()
		m.revealer = nil
		m.state = StateIdle
		return m, nil
	}
	return m, revealStep(m.revealGen)
}

// handleTurnPanicked is the last-resort catch-all: clear the busy flag
// and append a fixed restart-advice turn so the user still gets a reply
// in the history instead of a crashed view.
func (m Model) handleTurnPanicked(v msg.TurnPanicked) (tea.Model, tea.Cmd) {
	m.log.Error().Any("panic", v.Value).Msg("turn processing panicked")
	m.indicator.Stop()
	m.chat.SetIndicatorView("")
	m.status.SetBusy(false)
	m.conv.ClearBusy()
	m.conv.BeginAssistantTurn()
	m.conv.SetStreamingContent(report.RenderFailureNotice)
	m.conv.FinalizeAssistantTurn()
	m.chat.Refresh()
	m.state = StateIdle
	return m, m.input.Focus()
}

// -- Connection --

func (m Model) checkHealth() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		health, err := c.Health()
		if err != nil {
			return msg.HealthResult{Err: err}
		}
		return msg.HealthResult{Status: health.Status, Version: health.Version}
	}
}

func (m Model) handleHealth(h msg.HealthResult) (tea.Model, tea.Cmd) {
	if h.Err != nil {
		m.log.Warn().Err(h.Err).Msg("backend unreachable")
		m.state = StateConnecting
		return m, tea.Tick(healthRetryInterval, func(time.Time) tea.Msg { return msg.RetryHealth{} })
	}
	m.banner.SetHealth(h)
	m.state = StateIdle
	m.chat.SetSize(m.width, m.chatHeight())
	return m, m.input.Focus()
}

// -- Layout --

// chatHeight is the terminal height minus banner, status, and input
// lines.
func (m Model) chatHeight() int {
	h := m.height - 4
	if h < 5 {
		h = 5
	}
	return h
}

func (m Model) renderConnecting() string {
	return "\n  " + style.BannerTitle.Render("MatForge") + "\n\n" +
		style.Faint.Render(fmt.Sprintf("  Connecting to %s …", m.client.BaseURL))
}

// revealStep schedules the next chunk after a randomized 10–30ms pause.
func revealStep(gen int) tea.Cmd {
	return tea.Tick(stream.Delay(), func(time.Time) tea.Msg { return msg.RevealStep{Gen: gen} })
}
