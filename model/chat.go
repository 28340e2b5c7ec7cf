package model

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/matforge/forge-tui/markdown"
	"github.com/matforge/forge-tui/style"
)

// ChatModel is the scrollable transcript. It renders the conversation
// store into a viewport and keeps the view anchored to the newest
// content while the pin controller says so.
type ChatModel struct {
	vp        viewport.Model
	conv      *Conversation
	pin       PinController
	width     int
	height    int
	indicator string // inline loading indicator, "" when idle
}

// NewChat constructs a ChatModel over conv, sized to width x height.
func NewChat(conv *Conversation, width, height int) ChatModel {
	vp := viewport.New(width, height)
	vp.SetContent("")
	return ChatModel{
		vp:     vp,
		conv:   conv,
		pin:    NewPinController(),
		width:  width,
		height: height,
	}
}

// SetSize resizes the underlying viewport and re-renders.
func (m *ChatModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.vp.Width = width
	m.vp.Height = height
	m.Refresh()
}

// SetIndicatorView places the loading indicator inline below the
// transcript. Pass "" to remove it.
func (m *ChatModel) SetIndicatorView(view string) {
	m.indicator = view
	m.Refresh()
}

// Pinned reports whether the view is following the newest content.
func (m *ChatModel) Pinned() bool { return m.pin.Pinned() }

// OnSubmit forces pinning and re-renders; called when the user sends a
// message so the view jumps to it even if they had scrolled away.
func (m *ChatModel) OnSubmit() {
	m.pin.OnSubmit()
	m.Refresh()
}

// Refresh re-renders the transcript after any conversation mutation.
// Scrolls to the bottom anchor only while pinned; an unpinned view stays
// where the user left it.
func (m *ChatModel) Refresh() {
	m.vp.SetContent(m.renderAll())
	if m.pin.Pinned() {
		m.vp.GotoBottom()
	}
}

// ScrollToTop jumps to the oldest turn and recomputes pinning.
func (m *ChatModel) ScrollToTop() {
	m.vp.GotoTop()
	m.pin.OnScroll(m.vp.YOffset, m.vp.TotalLineCount(), m.vp.Height)
}

// ScrollToBottom jumps to the newest turn and recomputes pinning.
func (m *ChatModel) ScrollToBottom() {
	m.vp.GotoBottom()
	m.pin.OnScroll(m.vp.YOffset, m.vp.TotalLineCount(), m.vp.Height)
}

// Init satisfies tea.Model.
func (m ChatModel) Init() tea.Cmd {
	return nil
}

// Update forwards keyboard and mouse events to the viewport, then feeds
// the resulting geometry to the pin controller.
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	m.pin.OnScroll(m.vp.YOffset, m.vp.TotalLineCount(), m.vp.Height)
	return m, cmd
}

// View returns the rendered viewport content.
func (m ChatModel) View() string {
	return m.vp.View()
}

// renderAll builds the full transcript string.
func (m *ChatModel) renderAll() string {
	if m.conv.Len() == 0 && m.indicator == "" {
		return style.Faint.Render("  Enter a material formula (e.g. NaCl) to analyze it.")
	}
	var sb strings.Builder
	for i, t := range m.conv.Turns() {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(m.renderTurn(t))
	}
	if m.indicator != "" {
		if m.conv.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(m.indicator)
	}
	return sb.String()
}

// renderTurn converts a single turn to a display block. Assistant turns
// go through the markdown renderer; user turns stay literal.
func (m *ChatModel) renderTurn(t *Turn) string {
	switch t.Role {
	case RoleUser:
		return style.UserLabel.Render("❯ You") + "\n" + t.Content
	case RoleAssistant:
		return style.AgentLabel.Render("◆ Forge") + "\n" + markdown.RenderWidth(t.Content, m.contentWidth())
	default:
		return t.Content
	}
}

// contentWidth caps the markdown wrap width so wide terminals keep the
// report readable.
func (m *ChatModel) contentWidth() int {
	w := m.width
	if w > 100 {
		w = 100
	}
	if w < 20 {
		w = 20
	}
	return w
}
