// Package render draws shaped distributions for the terminal: bar charts,
// tables and JSON.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Palette shared with the interactive view.
var (
	ColorActive = lipgloss.AdaptiveColor{
		Light: "#538786",
		Dark:  "#7fc8c6",
	}
	ColorMuted = lipgloss.AdaptiveColor{
		Light: "#9ca3af",
		Dark:  "#6c7680",
	}
	ColorAccent = lipgloss.AdaptiveColor{
		Light: "#399ee6",
		Dark:  "#59c2ff",
	}
)

// Theme is a set of styles bound to one output.
type Theme struct {
	Active lipgloss.Style
	Dim    lipgloss.Style
	Bar    lipgloss.Style
	Header lipgloss.Style
	Accent lipgloss.Style
}

// ValidColorMode reports whether mode is always, auto or never.
func ValidColorMode(mode string) bool {
	switch mode {
	case "always", "auto", "never":
		return true
	}
	return false
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewTheme builds styles for w. Mode "auto" colours only terminals.
func NewTheme(w io.Writer, mode string) (Theme, error) {
	if !ValidColorMode(mode) {
		return Theme{}, fmt.Errorf("invalid color mode %q: must be always, auto, or never", mode)
	}
	r := lipgloss.NewRenderer(w)
	switch {
	case mode == "never", mode == "auto" && !IsTerminal(w):
		r.SetColorProfile(termenv.Ascii)
	case mode == "always" && r.ColorProfile() == termenv.Ascii:
		r.SetColorProfile(termenv.ANSI256)
	}
	return Theme{
		Active: r.NewStyle().Foreground(ColorActive).Bold(true),
		Dim:    r.NewStyle().Foreground(ColorMuted),
		Bar:    r.NewStyle().Foreground(ColorActive),
		Header: r.NewStyle().Bold(true),
		Accent: r.NewStyle().Foreground(ColorAccent),
	}, nil
}
