package playground

import (
	"strconv"
	"strings"

	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/syntaxview/internal/ui/styles"
)

const zoneDemo = "pane-demo"

func demoZoneID(i int) string {
	return "demo-" + strconv.Itoa(i)
}

// renderSidebar renders the demo list. Each entry is a clickable zone.
func renderSidebar(zones *zone.Manager, demos []ComponentDemo, selectedIndex, width int, focused bool) string {
	var sb strings.Builder
	pad := " "

	headerStyle := styles.HeaderStyle
	if focused {
		headerStyle = headerStyle.Foreground(styles.BorderHighlightFocusColor)
	}

	sb.WriteString(pad + headerStyle.Render("Components"))
	sb.WriteString("\n")
	sb.WriteString(pad + styles.MutedStyle.Render(strings.Repeat("─", max(width-4, 1))))
	sb.WriteString("\n")

	for i, demo := range demos {
		var line string
		if i == selectedIndex {
			line = pad + styles.SelectionIndicatorStyle.Render("●") + " " + styles.SelectedStyle.Render(demo.Name)
		} else {
			line = pad + "  " + styles.NormalStyle.Render(demo.Name)
		}
		sb.WriteString(zones.Mark(demoZoneID(i), line))
		sb.WriteString("\n")
	}

	if selectedIndex < len(demos) {
		sb.WriteString("\n")
		sb.WriteString(pad + styles.MutedStyle.Render(styles.TruncateString(demos[selectedIndex].Description, max(width-4, 1))))
	}
	return sb.String()
}
