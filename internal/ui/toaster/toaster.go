// Package toaster shows short notices over the corner of a view.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/syntaxview/internal/ui/overlay"
	"github.com/zjrosen/syntaxview/internal/ui/styles"
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 2 * time.Second

// Level selects the toast color.
type Level int

const (
	Info Level = iota
	Success
	Error
)

// Model holds at most one toast.
type Model struct {
	text  string
	level Level
	seq   int

	// Duration before a toast dismisses itself. Zero uses DefaultDuration;
	// negative keeps toasts until replaced or hidden.
	Duration time.Duration
}

// dismissMsg hides the toast it was scheduled for, and only that one.
type dismissMsg struct{ seq int }

// New creates an empty toaster.
func New() Model {
	return Model{}
}

// Show replaces the current toast and schedules its dismissal.
func (m Model) Show(text string, level Level) (Model, tea.Cmd) {
	m.seq++
	m.text = text
	m.level = level

	d := m.Duration
	if d == 0 {
		d = DefaultDuration
	}
	if d < 0 {
		return m, nil
	}
	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg { return dismissMsg{seq: seq} })
}

// Hide removes the toast.
func (m Model) Hide() Model {
	m.text = ""
	return m
}

// Update handles dismissal ticks.
func (m Model) Update(msg tea.Msg) Model {
	if msg, ok := msg.(dismissMsg); ok && msg.seq == m.seq {
		return m.Hide()
	}
	return m
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool {
	return m.text != ""
}

// Text returns the current toast text.
func (m Model) Text() string {
	return m.text
}

// View renders the toast box, or "" when hidden.
func (m Model) View() string {
	if m.text == "" {
		return ""
	}
	color := styles.BorderHighlightFocusColor
	switch m.level {
	case Success:
		color = styles.StatusSuccessColor
	case Error:
		color = styles.StatusErrorColor
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Foreground(styles.TextPrimaryColor).
		Render(m.text)
}

// Overlay draws the toast in the bottom right corner of bg, bottomMargin
// lines above the last line.
func (m Model) Overlay(bg string, width, height, bottomMargin int) string {
	if m.text == "" {
		return bg
	}
	return overlay.Place(m.View(), bg, overlay.Options{
		Width:   width,
		Height:  height,
		Anchor:  overlay.BottomRight,
		MarginX: 2,
		MarginY: bottomMargin,
	})
}
