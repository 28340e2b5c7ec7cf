package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/matforge/forge-tui/style"
)

// StatusModel renders the bottom status line. Two visual states:
//
//   - busy: elapsed time since submit
//   - idle: key hints, plus a marker when the view is scrolled away from
//     the newest content
type StatusModel struct {
	busy     bool
	busyFrom time.Time
	unpinned bool
}

// NewStatus returns a zero-value StatusModel.
func NewStatus() StatusModel {
	return StatusModel{}
}

// SetBusy marks the model as processing (true) or idle (false).
func (m *StatusModel) SetBusy(busy bool) {
	m.busy = busy
	if busy {
		m.busyFrom = time.Now()
	}
}

// SetUnpinned toggles the scrolled-away marker.
func (m *StatusModel) SetUnpinned(unpinned bool) {
	m.unpinned = unpinned
}

// View renders the status line.
func (m StatusModel) View() string {
	if m.busy {
		return style.StatusBar.Render(fmt.Sprintf("analyzing… %s", formatElapsed(time.Since(m.busyFrom))))
	}
	var parts []string
	if m.unpinned {
		parts = append(parts, style.Hint.Render("↓ scrolled up — End to follow"))
	}
	parts = append(parts, style.Hint.Render("enter send · pgup/pgdn scroll · ctrl+c quit"))
	return style.StatusBar.Render(strings.Join(parts, "  "))
}

// formatElapsed renders a duration as a concise string: 3s, 1m 23s.
func formatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	if total < 60 {
		return fmt.Sprintf("%ds", total)
	}
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}
