package userconfig

import (
	"fmt"
	"strings"
)

// Theme values the front-end understands.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Lint reports values the front-end is unlikely to handle. It never rejects a
// record: the store persists whatever it is given.
func Lint(cfg AppConfig) []string {
	var findings []string

	switch strings.TrimSpace(cfg.Theme) {
	case "", ThemeLight, ThemeDark, ThemeSystem:
	default:
		findings = append(findings, fmt.Sprintf("theme %q is not one of light|dark|system", cfg.Theme))
	}

	if cfg.Color != strings.TrimSpace(cfg.Color) {
		findings = append(findings, fmt.Sprintf("color %q has surrounding whitespace", cfg.Color))
	}

	if cfg.Zoom < 0 {
		findings = append(findings, fmt.Sprintf("zoom %d is negative", cfg.Zoom))
	}

	if cfg.SidebarWidth < 0 {
		findings = append(findings, fmt.Sprintf("sidebar_width %d is negative", cfg.SidebarWidth))
	}

	return findings
}
