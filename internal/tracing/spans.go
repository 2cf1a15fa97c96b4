package tracing

// Span names.
const (
	SpanRender = "render.Render"
)

// Span attribute keys.
const (
	AttrLanguage    = "render.language"
	AttrTheme       = "render.theme"
	AttrBytes       = "render.bytes"
	AttrRows        = "render.rows"
	AttrInline      = "render.inline"
	AttrLineNumbers = "render.line_numbers"
)
