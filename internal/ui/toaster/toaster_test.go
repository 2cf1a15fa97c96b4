package toaster

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestNew_Hidden(t *testing.T) {
	m := New()
	require.False(t, m.Visible())
	require.Empty(t, m.View())
	require.Equal(t, "bg", m.Overlay("bg", 10, 1, 0))
}

func TestShow_RendersBox(t *testing.T) {
	m, cmd := New().Show("Theme: dracula", Info)
	require.NotNil(t, cmd)
	require.True(t, m.Visible())

	view := ansi.Strip(m.View())
	require.Contains(t, view, "Theme: dracula")
	require.Contains(t, view, "╭")
}

func TestShow_ReplacesPrevious(t *testing.T) {
	m, _ := New().Show("first", Info)
	m, _ = m.Show("second", Error)
	require.Equal(t, "second", m.Text())
	require.NotContains(t, m.View(), "first")
}

func TestDismiss_OnlyLatest(t *testing.T) {
	m := Model{Duration: time.Millisecond}
	m, stale := m.Show("first", Info)
	m, fresh := m.Show("second", Success)

	m = m.Update(stale())
	require.True(t, m.Visible(), "a dismissal scheduled for an older toast is ignored")

	m = m.Update(fresh())
	require.False(t, m.Visible())
}

func TestShow_NegativeDurationNeverDismisses(t *testing.T) {
	m := Model{Duration: -1}
	m, cmd := m.Show("sticky", Info)
	require.Nil(t, cmd)
	require.True(t, m.Visible())
	require.False(t, m.Hide().Visible())
}

func TestOverlay_BottomRight(t *testing.T) {
	bg := strings.Repeat(strings.Repeat(".", 30)+"\n", 9) + strings.Repeat(".", 30)
	m, _ := Model{Duration: -1}.Show("hi", Info)

	lines := strings.Split(ansi.Strip(m.Overlay(bg, 30, 10, 1)), "\n")
	require.Len(t, lines, 10)
	require.Equal(t, strings.Repeat(".", 30), lines[9], "margin line untouched")
	require.True(t, strings.HasSuffix(lines[7], "│ hi │.."))
	require.True(t, strings.HasSuffix(lines[8], "╰────╯.."))
}
