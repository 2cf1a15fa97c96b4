package panes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/syntaxview/internal/ui/styles"
)

// ScrollIndicatorStyle styles the "NN%" position shown on scrollable panes.
var ScrollIndicatorStyle = lipgloss.NewStyle().Foreground(styles.TextMutedColor)

// ScrollableConfig configures a scrollable pane.
type ScrollableConfig struct {
	// Viewport holds scroll state across renders and is resized in place.
	Viewport *viewport.Model

	LeftTitle  string
	RightTitle string
	BottomLeft string

	Focused            bool
	TitleColor         lipgloss.TerminalColor
	BorderColor        lipgloss.TerminalColor
	FocusedBorderColor lipgloss.TerminalColor
}

// ScrollablePane renders content through cfg.Viewport inside a bordered
// pane. Content is top aligned and the scroll offset is kept when the pane
// is resized; a position indicator appears on the bottom edge once the
// content overflows.
func ScrollablePane(width, height int, cfg ScrollableConfig, contentFn func(wrapWidth int) string) string {
	vpWidth := max(width-2, 1)
	vpHeight := max(height-2, 1)

	offset := cfg.Viewport.YOffset
	cfg.Viewport.Width = vpWidth
	cfg.Viewport.Height = vpHeight
	cfg.Viewport.SetContent(contentFn(vpWidth))
	cfg.Viewport.SetYOffset(offset)

	return BorderedPane(BorderConfig{
		Content:            cfg.Viewport.View(),
		Width:              width,
		Height:             height,
		TopLeft:            cfg.LeftTitle,
		TopRight:           cfg.RightTitle,
		BottomLeft:         cfg.BottomLeft,
		BottomRight:        BuildScrollIndicator(*cfg.Viewport),
		Focused:            cfg.Focused,
		TitleColor:         cfg.TitleColor,
		BorderColor:        cfg.BorderColor,
		FocusedBorderColor: cfg.FocusedBorderColor,
	})
}

// BuildScrollIndicator returns "NN%" for a viewport whose content
// overflows, or "" when everything fits.
func BuildScrollIndicator(vp viewport.Model) string {
	if vp.TotalLineCount() <= vp.Height {
		return ""
	}
	return ScrollIndicatorStyle.Render(fmt.Sprintf("%.0f%%", vp.ScrollPercent()*100))
}
