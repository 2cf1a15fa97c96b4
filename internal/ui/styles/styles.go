// Package styles contains Lip Gloss style definitions shared by the
// playground chrome.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#696969"}

	// Borders
	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

	// SelectionIndicatorStyle styles the bullet in front of the selected
	// sidebar entry.
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	MutedStyle    = lipgloss.NewStyle().Foreground(TextMutedColor)
	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)
	NormalStyle   = lipgloss.NewStyle().Foreground(TextSecondaryColor)

	// StatusBarStyle renders the last-action line under a demo.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true)
)

// ApplyAccent overrides the focus color. Empty strings are ignored.
func ApplyAccent(accent string) {
	if accent == "" {
		return
	}
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: accent, Dark: accent}
}
