package tui

import (
	"os"
	"strconv"
	"strings"

	"quotemark-cli/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The TUI must stay readable on both light and dark terminal backgrounds, so
// colors are lipgloss.AdaptiveColor and "faint" is only applied on dark ones.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	defaultColorMuted lipgloss.TerminalColor = ac("240", "243")
	colorMuted                               = defaultColorMuted

	defaultColorAccent lipgloss.TerminalColor = ac("27", "62")
	colorAccent                               = defaultColorAccent

	defaultColorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedBg                               = defaultColorSelectedBg
	defaultColorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorSelectedFg                               = defaultColorSelectedFg

	// The quote highlight mirrors the browser's default <mark> (black on yellow).
	defaultColorMarkFg lipgloss.TerminalColor = ac("16", "16")
	colorMarkFg                               = defaultColorMarkFg
	defaultColorMarkBg lipgloss.TerminalColor = ac("227", "220")
	colorMarkBg                               = defaultColorMarkBg

	// In-progress drag selection.
	defaultColorDragBg lipgloss.TerminalColor = ac("153", "24")
	colorDragBg                               = defaultColorDragBg

	defaultColorBorder lipgloss.TerminalColor = ac("250", "240")
	colorBorder                               = defaultColorBorder

	defaultColorError lipgloss.TerminalColor = ac("160", "203")
	colorError                               = defaultColorError
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleMark() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMarkFg).Background(colorMarkBg)
}

func styleDrag() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorDragBg)
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

// applyConfigColors overrides the highlight palette from the user config.
// Partial colors keep the default for the missing variant.
func applyConfigColors(cfg *store.TUIConfig) {
	colorMarkFg = defaultColorMarkFg
	colorMarkBg = defaultColorMarkBg
	if cfg == nil {
		return
	}
	colorMarkFg = overrideColor(defaultColorMarkFg, cfg.HighlightFg)
	colorMarkBg = overrideColor(defaultColorMarkBg, cfg.HighlightBg)
}

func overrideColor(def lipgloss.TerminalColor, c *store.AdaptiveColor) lipgloss.TerminalColor {
	if c == nil {
		return def
	}
	light, dark := strings.TrimSpace(c.Light), strings.TrimSpace(c.Dark)
	if base, ok := def.(lipgloss.AdaptiveColor); ok {
		if light == "" {
			light = base.Light
		}
		if dark == "" {
			dark = base.Dark
		}
	}
	if light == "" && dark == "" {
		return def
	}
	return ac(light, dark)
}

// applyColorProfilePreference only honors NO_COLOR; termenv.EnvColorProfile
// would also follow CLICOLOR, which tends to disable colors in a TUI.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) QUOTEMARK_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg")
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("QUOTEMARK_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
