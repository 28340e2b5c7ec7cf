// Package style holds the lipgloss palette and shared styles for the
// forge TUI.
package style

import "github.com/charmbracelet/lipgloss"

// Colors — populated from the active theme; defaults to dark.
var (
	Primary   = lipgloss.Color("#2DD4BF") // teal-400
	Secondary = lipgloss.Color("#60A5FA") // blue-400
	Success   = lipgloss.Color("#22C55E") // green-500
	Warning   = lipgloss.Color("#F59E0B") // amber-500
	Error     = lipgloss.Color("#EF4444") // red-500
	Muted     = lipgloss.Color("#6B7280") // gray-500
	Dim       = lipgloss.Color("#374151") // gray-700
)

// Shared styles, rebuilt by SetTheme.
var (
	UserLabel    lipgloss.Style
	AgentLabel   lipgloss.Style
	Faint        lipgloss.Style
	Hint         lipgloss.Style
	PromptChar   lipgloss.Style
	SpinnerStyle lipgloss.Style
	StatusBar    lipgloss.Style
	BannerTitle  lipgloss.Style
	BannerDetail lipgloss.Style
	ErrorText    lipgloss.Style
)

func init() {
	rebuild()
}

func rebuild() {
	UserLabel = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	AgentLabel = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Faint = lipgloss.NewStyle().Foreground(Muted)
	Hint = lipgloss.NewStyle().Foreground(Dim)
	PromptChar = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	SpinnerStyle = lipgloss.NewStyle().Foreground(Primary)
	StatusBar = lipgloss.NewStyle().Foreground(Muted).PaddingLeft(1)
	BannerTitle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	BannerDetail = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error)
}
