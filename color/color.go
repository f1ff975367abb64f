// Package color provides the palette used by CLI output and the state view.
package color

import "github.com/charmbracelet/lipgloss"

// New initializes a lipgloss.Color from a string value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// Standard ANSI 8-color palette.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
)

// High-intensity ANSI colors.
var (
	HiRed    = New("9")
	HiPurple = New("13")
	HiCyan   = New("14")
)

// Overlay colors, one per control the gestures drive.
var (
	Seek       = New("#89b4fa")
	Volume     = New("#a6e3a1")
	Boost      = New("#fab387")
	Brightness = New("#f9e2af")
	Speed      = New("#cba6f7")
	Zoom       = New("#94e2d5")
	Faint      = New("#6c7086")
)
