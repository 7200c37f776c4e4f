package tsalert

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
)

// SourceUnit owns one file's text and, when parsing succeeded, its syntax
// tree. Nodes obtained from a SourceUnit must not be used after Close.
type SourceUnit struct {
	Path string
	Text []byte

	lang     Language
	tree     *sitter.Tree
	root     Node
	parseErr error
}

// LoadSource reads path and parses it with the given language. A read
// failure is returned as an error. A parse failure is not: the unit is
// returned without a tree and HasTree reports false.
func LoadSource(ctx context.Context, path string, language Language, allowSyntaxErrors bool) (*SourceUnit, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	p := newParser(language)
	defer p.close()

	return newSourceUnit(ctx, p, path, text, allowSyntaxErrors), nil
}

// ParseSource builds a SourceUnit from text that is already in memory.
func ParseSource(ctx context.Context, path string, text []byte, language Language, allowSyntaxErrors bool) *SourceUnit {
	p := newParser(language)
	defer p.close()
	return newSourceUnit(ctx, p, path, text, allowSyntaxErrors)
}

func newSourceUnit(ctx context.Context, p *parser, path string, text []byte, allowSyntaxErrors bool) *SourceUnit {
	unit := &SourceUnit{
		Path: path,
		Text: text,
		lang: p.lang,
	}

	tree, err := p.parse(ctx, text, allowSyntaxErrors)
	if err != nil {
		unit.parseErr = err
		return unit
	}
	unit.tree = tree
	unit.root = newSitterNode(tree.RootNode(), text)
	return unit
}

// HasTree reports whether the unit was parsed successfully.
func (u *SourceUnit) HasTree() bool {
	return u.root != nil
}

// ParseErr returns why the unit has no tree, or nil.
func (u *SourceUnit) ParseErr() error {
	return u.parseErr
}

// Root returns the root node, or nil without a tree.
func (u *SourceUnit) Root() Node {
	return u.root
}

// Language returns the grammar the unit was parsed with.
func (u *SourceUnit) Language() Language {
	return u.lang
}

// Close releases the syntax tree. Nodes from this unit become invalid.
func (u *SourceUnit) Close() {
	if u.tree != nil {
		u.tree.Close()
		u.tree = nil
	}
	u.root = nil
}
