// Package highlight turns source text into a tree of classified token nodes.
//
// The tree mirrors what a highlighter hands a renderer: the top level is one
// row node per source line, rows contain token elements, and elements wrap
// literal leaves. Newline characters never appear inside a node; rows are
// joined with "\n" when flattened.
package highlight

import "strings"

// Node is a unit of tokenizer output. A leaf carries literal text in Value and
// has nil Children. An element carries classification tags and child nodes.
type Node struct {
	Value    string
	Classes  []string
	Children []Node
}

// IsLeaf reports whether the node is a literal text leaf.
func (n Node) IsLeaf() bool {
	return n.Children == nil
}

// Text returns the depth-first concatenation of every leaf under n.
func (n Node) Text() string {
	if n.IsLeaf() {
		return n.Value
	}
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n Node) writeText(sb *strings.Builder) {
	if n.IsLeaf() {
		sb.WriteString(n.Value)
		return
	}
	for _, child := range n.Children {
		child.writeText(sb)
	}
}

// Leaf creates a literal text node.
func Leaf(value string) Node {
	return Node{Value: value}
}

// Element creates a classified node wrapping children.
func Element(classes []string, children ...Node) Node {
	if children == nil {
		children = []Node{}
	}
	return Node{Classes: classes, Children: children}
}

// Flatten joins the text of each row with newlines, reproducing the source.
func Flatten(rows []Node) string {
	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		row.writeText(&sb)
	}
	return sb.String()
}

// Plain returns the unclassified tree for text: one row per line, each row
// holding a single leaf.
func Plain(text string) []Node {
	lines := strings.Split(text, "\n")
	rows := make([]Node, len(lines))
	for i, line := range lines {
		rows[i] = Element(nil, Leaf(line))
	}
	return rows
}
