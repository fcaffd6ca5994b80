package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mvcisback/pytypedecl/internal/diagnostic"
)

// ColorMode controls when diagnostic output is styled.
type ColorMode int

const (
	// ColorAuto styles output only when it goes to a terminal.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses the --color flag / config value. The empty
// string means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, always, or never)", s)
}

// String returns the flag spelling of the mode.
func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// Enabled reports whether styled output should be produced for f.
func (m ColorMode) Enabled(f *os.File) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return IsTerminal(f)
}

// Diagnostic styling. ANSI palette colors so the terminal theme
// decides the exact shades.
var (
	positionStyle = lipgloss.NewStyle().Bold(true)
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	caretStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

// RenderDiagnostic renders d for terminal output: the plain multi-line
// form when color is off, the styled form when on. Both carry the same
// text.
func RenderDiagnostic(d *diagnostic.Diagnostic, color bool) string {
	if !color {
		return d.Render()
	}

	var b strings.Builder
	b.WriteString(positionStyle.Render(fmt.Sprintf("%s:%d:%d:", d.Filename, d.Line, d.Column)))
	b.WriteString(" ")
	b.WriteString(categoryStyle.Render(d.Category.String() + ":"))
	b.WriteString(" ")
	b.WriteString(d.Message)
	if d.LineText != "" {
		b.WriteString("\n")
		b.WriteString(d.LineText)
		b.WriteString("\n")
		b.WriteString(caretStyle.Render(d.Caret()))
	}
	return b.String()
}
