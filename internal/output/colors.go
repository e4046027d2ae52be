package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// NoColor returns true if colored output should be disabled.
// Respects the NO_COLOR environment variable (https://no-color.org/).
func NoColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

// Color definitions for consistent styling across the CLI.
var (
	ColorSuccess = lipgloss.Color("#2ECC71") // green
	ColorWarning = lipgloss.Color("#F39C12") // orange
	ColorError   = lipgloss.Color("#E74C3C") // red
	ColorInfo    = lipgloss.Color("#3498DB") // blue
	ColorMuted   = lipgloss.Color("#95A5A6") // gray
	ColorAccent  = lipgloss.Color("#9B59B6") // purple
)

// Style presets for common output patterns.
var (
	// StyleBold is for emphasis.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleSuccess is for success indicators.
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)

	// StyleError is for failure indicators.
	StyleError = lipgloss.NewStyle().Foreground(ColorError)

	// StyleMuted is for secondary text like the progress line.
	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted)
)

// logStyles returns logger styles colored with the egressctl palette.
func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Levels[log.DebugLevel] = styles.Levels[log.DebugLevel].Foreground(ColorMuted)
	styles.Levels[log.InfoLevel] = styles.Levels[log.InfoLevel].Foreground(ColorInfo)
	styles.Levels[log.WarnLevel] = styles.Levels[log.WarnLevel].Foreground(ColorWarning)
	styles.Levels[log.ErrorLevel] = styles.Levels[log.ErrorLevel].Foreground(ColorError)
	styles.Key = styles.Key.Foreground(ColorAccent)
	return styles
}

// plainStyles returns styles without color for NO_COLOR mode.
func plainStyles() *log.Styles {
	// charmbracelet/log already strips styles when rendering to a non-TTY;
	// defaults are fine for the logger configuration itself.
	return log.DefaultStyles()
}
