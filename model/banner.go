package model

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/matforge/forge-tui/msg"
	"github.com/matforge/forge-tui/style"
)

// BannerModel renders the one-line header:
//
//	MatForge v1.2 · http://localhost:8000
//
// It is populated from the health check result and is purely static.
type BannerModel struct {
	version    string
	backendURL string
}

// NewBanner returns a BannerModel with a default version string.
func NewBanner(backendURL string) BannerModel {
	return BannerModel{version: "dev", backendURL: backendURL}
}

// SetHealth populates the banner from a HealthResult message.
func (m *BannerModel) SetHealth(h msg.HealthResult) {
	if h.Version != "" {
		m.version = h.Version
	}
}

// Version returns the backend version string for display elsewhere.
func (m BannerModel) Version() string { return m.version }

// View renders the header line.
func (m BannerModel) View() string {
	muted := lipgloss.NewStyle().Foreground(style.Muted)
	title := style.BannerTitle.Render(fmt.Sprintf("MatForge %s", m.version))
	sep := muted.Render(" · ")
	url := style.BannerDetail.Render(m.backendURL)
	return title + sep + url
}
