package style

import "github.com/charmbracelet/lipgloss"

// Theme defines a color palette for the TUI.
type Theme struct {
	Name                                        string
	Primary, Secondary, Success, Warning, Error lipgloss.Color
	Muted, Dim                                  lipgloss.Color
}

var (
	darkTheme = Theme{
		Name:      "dark",
		Primary:   lipgloss.Color("#2DD4BF"), // teal-400
		Secondary: lipgloss.Color("#60A5FA"), // blue-400
		Success:   lipgloss.Color("#22C55E"), // green-500
		Warning:   lipgloss.Color("#F59E0B"), // amber-500
		Error:     lipgloss.Color("#EF4444"), // red-500
		Muted:     lipgloss.Color("#6B7280"), // gray-500
		Dim:       lipgloss.Color("#374151"), // gray-700
	}

	lightTheme = Theme{
		Name:      "light",
		Primary:   lipgloss.Color("#0D9488"), // teal-600
		Secondary: lipgloss.Color("#2563EB"), // blue-600
		Success:   lipgloss.Color("#16A34A"), // green-600
		Warning:   lipgloss.Color("#D97706"), // amber-600
		Error:     lipgloss.Color("#DC2626"), // red-600
		Muted:     lipgloss.Color("#9CA3AF"), // gray-400
		Dim:       lipgloss.Color("#D1D5DB"), // gray-300
	}
)

// Themes maps theme names to their definitions.
var Themes = map[string]Theme{
	"dark":  darkTheme,
	"light": lightTheme,
}

// SetTheme switches the active palette and rebuilds the shared styles.
// Unknown names fall back to dark.
func SetTheme(name string) {
	t, ok := Themes[name]
	if !ok {
		t = darkTheme
	}
	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	rebuild()
}
