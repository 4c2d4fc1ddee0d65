package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mordilloSan/appsettings/bridge/userconfig"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(16)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))
)

// renderShow writes a human-readable view of cfg, followed by any lint
// findings.
func renderShow(w io.Writer, path string, exists bool, cfg userconfig.AppConfig) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings") + "\n")

	state := "saved"
	if !exists {
		state = "defaults (no file)"
	}
	rows := [][2]string{
		{"file", path},
		{"state", state},
		{"theme", cfg.Theme},
		{"color", cfg.Color},
		{"zoom", fmt.Sprint(cfg.Zoom)},
		{"show_app_rail", fmt.Sprint(cfg.ShowAppRail)},
		{"sidebar_open", fmt.Sprint(cfg.SidebarOpen)},
		{"sidebar_width", fmt.Sprint(cfg.SidebarWidth)},
	}
	for _, r := range rows {
		b.WriteString(keyStyle.Render(r[0]) + valueStyle.Render(r[1]) + "\n")
	}
	for _, f := range userconfig.Lint(cfg) {
		b.WriteString(warnStyle.Render("! "+f) + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
