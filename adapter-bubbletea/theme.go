package adapter_bubbletea

import (
	"maps"

	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/gotext/adapter-bubbletea/highlighter"
	editor "github.com/ionut-t/gotext/core"
)

type Theme struct {
	TextStyle          lipgloss.Style
	TildeStyle         lipgloss.Style
	StatusLineStyle    lipgloss.Style
	MessageStyle       lipgloss.Style
	CaretStyle         lipgloss.Style
	MatchStyle         lipgloss.Style
	SelectedMatchStyle lipgloss.Style
	Syntax             map[editor.AnnotationType]lipgloss.Style
}

const DefaultSyntaxTheme = "monokai"

var DefaultTheme = Theme{
	TextStyle:          lipgloss.NewStyle(),
	TildeStyle:         lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	StatusLineStyle:    lipgloss.NewStyle().Reverse(true),
	MessageStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	CaretStyle:         lipgloss.NewStyle().Reverse(true),
	MatchStyle:         lipgloss.NewStyle().Background(lipgloss.Color("237")).Foreground(lipgloss.Color("255")),
	SelectedMatchStyle: lipgloss.NewStyle().Background(lipgloss.Color("220")).Foreground(lipgloss.Color("0")).Bold(true),
	Syntax:             highlighter.Styles(DefaultSyntaxTheme),
}

// WithSyntaxTheme returns a copy of the theme using the named chroma style
// for syntax annotations.
func (t Theme) WithSyntaxTheme(name string) Theme {
	t.Syntax = highlighter.Styles(name)
	return t
}

// WithSyntax returns a copy of the theme with styles overridden per type.
func (t Theme) WithSyntax(overrides map[editor.AnnotationType]lipgloss.Style) Theme {
	syntax := maps.Clone(t.Syntax)
	if syntax == nil {
		syntax = make(map[editor.AnnotationType]lipgloss.Style, len(overrides))
	}
	maps.Copy(syntax, overrides)
	t.Syntax = syntax
	return t
}

// StyleFor returns the style used to render text of the given annotation
// type.
func (t Theme) StyleFor(annotationType editor.AnnotationType) lipgloss.Style {
	switch annotationType {
	case editor.AnnotationNone:
		return t.TextStyle
	case editor.AnnotationMatch:
		return t.MatchStyle
	case editor.AnnotationSelectedMatch:
		return t.SelectedMatchStyle
	}
	if style, ok := t.Syntax[annotationType]; ok {
		return style
	}
	return t.TextStyle
}
