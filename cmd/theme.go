package cmd

import (
	"github.com/charmbracelet/lipgloss"

	adapter_bubbletea "github.com/ionut-t/gotext/adapter-bubbletea"
	"github.com/ionut-t/gotext/core"
	"github.com/ionut-t/gotext/internal/config"
)

// themeFromConfig applies the configured colours on top of the default
// theme. Empty values keep the defaults.
func themeFromConfig(cfg config.Config) adapter_bubbletea.Theme {
	theme := adapter_bubbletea.DefaultTheme.WithSyntaxTheme(cfg.SyntaxTheme)
	colors := cfg.Theme

	if colors.Match != "" {
		theme.MatchStyle = theme.MatchStyle.Background(lipgloss.Color(colors.Match))
	}
	if colors.SelectedMatch != "" {
		theme.SelectedMatchStyle = theme.SelectedMatchStyle.Background(lipgloss.Color(colors.SelectedMatch))
	}
	if colors.Message != "" {
		theme.MessageStyle = theme.MessageStyle.Foreground(lipgloss.Color(colors.Message))
	}
	if colors.Tilde != "" {
		theme.TildeStyle = theme.TildeStyle.Foreground(lipgloss.Color(colors.Tilde))
	}

	if len(colors.Syntax) > 0 {
		overrides := make(map[core.AnnotationType]lipgloss.Style, len(colors.Syntax))
		for name, color := range colors.Syntax {
			if t, ok := core.ParseAnnotationType(name); ok {
				overrides[t] = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			}
		}
		theme = theme.WithSyntax(overrides)
	}
	return theme
}
