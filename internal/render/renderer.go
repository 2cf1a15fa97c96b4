// Package render turns a token tree into a styled, optionally line-numbered
// visual frame.
package render

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/syntaxview/internal/highlight"
	"github.com/zjrosen/syntaxview/internal/theme"
	"github.com/zjrosen/syntaxview/internal/tracing"
)

const tracerName = "github.com/zjrosen/syntaxview/internal/render"

// Transparent as a background override disables the theme background.
const Transparent = "transparent"

// Renderer renders source text using a tokenizer.
type Renderer struct {
	tokenizer highlight.Tokenizer
	tracer    trace.Tracer
}

// New creates a renderer. A nil tokenizer uses highlight.Default.
func New(tokenizer highlight.Tokenizer) *Renderer {
	if tokenizer == nil {
		tokenizer = highlight.Default
	}
	return &Renderer{
		tokenizer: tokenizer,
		tracer:    otel.Tracer(tracerName),
	}
}

var defaultRenderer = New(nil)

// Render renders text with the default tokenizer.
func Render(text, language string, table *theme.StyleTable, opts Options) Frame {
	return defaultRenderer.Render(context.Background(), text, language, table, opts)
}

// Render tokenizes text and builds a frame. It never fails: unknown
// languages and empty input produce unclassified runs.
func (r *Renderer) Render(ctx context.Context, text, language string, table *theme.StyleTable, opts Options) Frame {
	if table == nil {
		table = theme.Resolve("")
	}

	_, span := r.tracer.Start(ctx, tracing.SpanRender, trace.WithAttributes(
		attribute.String(tracing.AttrLanguage, language),
		attribute.String(tracing.AttrTheme, table.Name),
		attribute.Int(tracing.AttrBytes, len(text)),
		attribute.Bool(tracing.AttrInline, opts.Inline),
		attribute.Bool(tracing.AttrLineNumbers, opts.LineNumbers),
	))
	defer span.End()
	opts = opts.normalized()

	rows := r.tokenizer.Tokenize(text, language)
	if len(rows) == 0 {
		rows = highlight.Plain(text)
	}

	frame := Frame{
		Inline:                opts.Inline,
		Background:            resolveBackground(opts, table),
		Foreground:            resolveForeground(opts, table),
		LineNumbersColor:      opts.LineNumbersColor,
		LineNumbersBackground: opts.LineNumbersBackgroundColor,
		Layout:                computeLayout(opts, len(rows)),
	}
	base := theme.Style{Foreground: frame.Foreground}

	if opts.Inline {
		var runs []Run
		for i, row := range rows {
			if i > 0 {
				runs = append(runs, Run{Text: "\n"})
			}
			runs = walk(row.Children, base, table, runs)
		}
		frame.Rows = []Row{{Runs: runs}}
		span.SetAttributes(attribute.Int(tracing.AttrRows, 1))
		return frame
	}

	frame.Rows = make([]Row, len(rows))
	for i, row := range rows {
		frame.Rows[i].Runs = walk(row.Children, table.Compose(base, row.Classes), table, nil)
		if opts.LineNumbers {
			frame.Rows[i].Number = i + 1
		}
	}
	span.SetAttributes(attribute.Int(tracing.AttrRows, len(frame.Rows)))
	return frame
}

// walk emits one run per leaf, composing class styles on the way down.
func walk(nodes []highlight.Node, style theme.Style, table *theme.StyleTable, runs []Run) []Run {
	for _, n := range nodes {
		if n.IsLeaf() {
			if n.Value == "" {
				runs = append(runs, Run{Text: " ", Style: style, Placeholder: true})
			} else {
				runs = append(runs, Run{Text: n.Value, Style: style})
			}
			continue
		}
		runs = walk(n.Children, table.Compose(style, n.Classes), table, runs)
	}
	return runs
}

func resolveBackground(opts Options, table *theme.StyleTable) string {
	if opts.Inline {
		return ""
	}
	switch {
	case strings.EqualFold(opts.BackgroundColor, Transparent):
		return ""
	case opts.BackgroundColor != "":
		return opts.BackgroundColor
	}
	return table.Base.Background
}

func resolveForeground(opts Options, table *theme.StyleTable) string {
	if opts.ForegroundColor != "" {
		return opts.ForegroundColor
	}
	return table.Base.Foreground
}
