package render

import (
	"math"
	"strconv"
	"strings"
)

// Platform selects platform-specific display rules.
type Platform int

const (
	// PlatformAndroid normalizes line height to a fixed multiple of the font size.
	PlatformAndroid Platform = iota
	// PlatformIOS uses the caller-supplied line height.
	PlatformIOS
)

func (p Platform) String() string {
	switch p {
	case PlatformIOS:
		return "ios"
	default:
		return "android"
	}
}

// ParsePlatform parses "ios" or "android"; anything else is android.
func ParsePlatform(s string) Platform {
	if strings.EqualFold(strings.TrimSpace(s), "ios") {
		return PlatformIOS
	}
	return PlatformAndroid
}

const (
	DefaultFontSize = 16.0
	DefaultPadding  = 16.0

	// GutterGap is the space between a line number label and the code.
	GutterGap = 5.0

	// DefaultLineNumbersColor is rgba(127, 127, 127, 0.9) flattened.
	DefaultLineNumbersColor = "#7f7f7f"

	lineHeightFactor   = 1.5
	gutterFactor       = 1.75
	lineNumberFactor   = 0.7
	cellWidthFactor    = 0.6
	iosFontFamily      = "Menlo-Regular"
	defaultFontFamily  = "monospace"
	minimumGutterCells = 2
)

// LineHeight applies the platform line-height rule: android always uses
// 1.5x the font size; ios uses the supplied value when set.
func LineHeight(p Platform, fontSize, supplied float64) float64 {
	if p == PlatformIOS && supplied > 0 {
		return supplied
	}
	return fontSize * lineHeightFactor
}

// DefaultFontFamily returns the monospace family for a platform.
func DefaultFontFamily(p Platform) string {
	if p == PlatformIOS {
		return iosFontFamily
	}
	return defaultFontFamily
}

// Options configures a render.
type Options struct {
	FontSize   float64
	FontFamily string
	Padding    float64

	// BackgroundColor overrides the theme background.
	BackgroundColor string
	// ForegroundColor overrides the theme foreground for the outermost run.
	ForegroundColor string

	LineNumbers                bool
	LineNumbersColor           string
	LineNumbersBackgroundColor string

	// LineHeight is only honored on PlatformIOS.
	LineHeight float64
	Platform   Platform

	// Inline renders a single chrome-free flow for embedding in text.
	Inline bool
}

// DefaultOptions returns block-mode defaults.
func DefaultOptions() Options {
	return Options{
		FontSize:         DefaultFontSize,
		FontFamily:       defaultFontFamily,
		Padding:          DefaultPadding,
		LineNumbersColor: DefaultLineNumbersColor,
	}
}

func (o Options) normalized() Options {
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.FontFamily == "" {
		o.FontFamily = DefaultFontFamily(o.Platform)
	}
	if o.LineNumbersColor == "" {
		o.LineNumbersColor = DefaultLineNumbersColor
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	if o.Inline {
		o.LineNumbers = false
		o.Padding = 0
		o.BackgroundColor = ""
	}
	return o
}

// Layout holds resolved metrics. Point values follow the layout rules;
// cell values are their terminal equivalents.
type Layout struct {
	FontSize           float64
	FontFamily         string
	LineHeight         float64
	CellWidth          float64
	LineNumberFontSize float64

	// GutterWidth is the horizontal space reserved for line numbers
	// (1.75x font size), LabelWidth the right-aligned label inside it.
	GutterWidth float64
	LabelWidth  float64

	GutterCells int
	PadCols     int
	PadRows     int
}

// TextColumn is the terminal column where source text starts.
func (l Layout) TextColumn() int {
	return l.PadCols + l.GutterCells
}

func computeLayout(o Options, lineCount int) Layout {
	l := Layout{
		FontSize:           o.FontSize,
		FontFamily:         o.FontFamily,
		LineHeight:         LineHeight(o.Platform, o.FontSize, o.LineHeight),
		CellWidth:          o.FontSize * cellWidthFactor,
		LineNumberFontSize: o.FontSize * lineNumberFactor,
	}

	if o.LineNumbers {
		l.GutterWidth = o.FontSize * gutterFactor
		l.LabelWidth = l.GutterWidth - GutterGap
		cells := int(math.Ceil(l.GutterWidth / l.CellWidth))
		digits := len(strconv.Itoa(max(lineCount, 1)))
		l.GutterCells = max(cells, digits+1, minimumGutterCells)
	}

	if o.Padding > 0 {
		l.PadCols = int(math.Round(o.Padding / l.CellWidth))
		l.PadRows = int(math.Round(o.Padding / l.LineHeight))
	}
	return l
}
