package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/matforge/forge-tui/app"
	"github.com/matforge/forge-tui/client"
	"github.com/matforge/forge-tui/config"
	"github.com/matforge/forge-tui/guard"
	"github.com/matforge/forge-tui/style"
)

var version = "dev"

func main() {
	urlFlag := flag.String("url", "", "Backend base URL (overrides config and FORGE_URL)")
	themeFlag := flag.String("theme", "", "Color theme: dark or light")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	debugFlag := flag.Bool("debug", false, "Write diagnostics to ~/.forge/debug.log")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("forge %s\n", version)
		os.Exit(0)
	}

	dir := config.Dir()
	cfg := config.Load(dir)

	baseURL := cfg.BackendURL
	if env := os.Getenv("FORGE_URL"); env != "" {
		baseURL = env
	}
	if *urlFlag != "" {
		baseURL = *urlFlag
	}

	theme := cfg.Theme
	if *themeFlag != "" {
		theme = *themeFlag
	}
	style.SetTheme(theme)
	if *noColor {
		lipgloss.SetColorProfile(0)
	}

	log := newLogger(dir, cfg.Debug || *debugFlag || os.Getenv("FORGE_DEBUG") != "")
	log.Info().Str("version", version).Str("backend", baseURL).Msg("forge starting")

	c := client.New(baseURL, log)
	root := guard.Wrap(app.New(c, cfg.FailurePhrases, log), nil, log)

	p := tea.NewProgram(root, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "forge: %v\n", err)
		os.Exit(1)
	}
}

// newLogger returns a file-backed logger when debug is on, a disabled
// one otherwise. A TUI owns the terminal, so diagnostics never go to
// stdout.
func newLogger(dir string, debug bool) zerolog.Logger {
	if !debug {
		return zerolog.Nop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop()
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop()
	}
	return zerolog.New(f).With().Timestamp().Logger()
}
