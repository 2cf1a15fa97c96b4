package editor

import "strings"

// DefaultTabWidth is the number of spaces a tab expands to.
const DefaultTabWidth = 2

// ConvertTabsToSpaces replaces every tab with width spaces. Tabs are not
// aligned to stops. A width below 1 uses DefaultTabWidth.
func ConvertTabsToSpaces(text string, width int) string {
	if !strings.ContainsRune(text, '\t') {
		return text
	}
	if width < 1 {
		width = DefaultTabWidth
	}
	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", width))
}

// expandedOffset maps a rune offset in text to the matching offset after
// ConvertTabsToSpaces.
func expandedOffset(text string, offset, width int) int {
	if width < 1 {
		width = DefaultTabWidth
	}
	tabs := 0
	i := 0
	for _, r := range text {
		if i >= offset {
			break
		}
		if r == '\t' {
			tabs++
		}
		i++
	}
	return offset + tabs*(width-1)
}
