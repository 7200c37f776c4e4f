package tsalert

import (
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// Point is a 0-based (row, column) position. Columns count characters, not bytes.
type Point struct {
	Row    int
	Column int
}

// Node is the capability set the locator, resolver and renderer need from a
// concrete syntax tree. A Node is only valid while the SourceUnit that
// produced it is alive.
type Node interface {
	Kind() string
	StartPosition() Point
	EndPosition() Point
	// Parent returns nil at the root.
	Parent() Node
	// Children returns the child nodes in source order.
	Children() []Node
}

// sitterNode adapts a tree-sitter node to Node. Tree-sitter reports byte
// columns; the adapter converts them to character columns using the text the
// tree was parsed from.
type sitterNode struct {
	n    *sitter.Node
	text []byte
}

func newSitterNode(n *sitter.Node, text []byte) Node {
	if n == nil || n.IsNull() {
		return nil
	}
	return &sitterNode{n: n, text: text}
}

func (s *sitterNode) Kind() string {
	return s.n.Type()
}

func (s *sitterNode) StartPosition() Point {
	return s.point(s.n.StartPoint(), s.n.StartByte())
}

func (s *sitterNode) EndPosition() Point {
	return s.point(s.n.EndPoint(), s.n.EndByte())
}

func (s *sitterNode) Parent() Node {
	return newSitterNode(s.n.Parent(), s.text)
}

func (s *sitterNode) Children() []Node {
	count := int(s.n.ChildCount())
	if count == 0 {
		return nil
	}
	children := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		if child := newSitterNode(s.n.Child(i), s.text); child != nil {
			children = append(children, child)
		}
	}
	return children
}

// point converts a tree-sitter point whose absolute byte offset is offset.
func (s *sitterNode) point(p sitter.Point, offset uint32) Point {
	end := int(offset)
	start := end - int(p.Column)
	if start < 0 || end > len(s.text) {
		return Point{Row: int(p.Row), Column: int(p.Column)}
	}
	return Point{Row: int(p.Row), Column: utf8.RuneCount(s.text[start:end])}
}
