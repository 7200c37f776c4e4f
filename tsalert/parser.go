package tsalert

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// parser wraps a tree-sitter parser bound to a single language.
type parser struct {
	parser *sitter.Parser
	lang   Language
}

// newParser creates a new parser for the given language.
func newParser(language Language) *parser {
	p := sitter.NewParser()
	p.SetLanguage(language.TreeSitterLang())
	return &parser{
		parser: p,
		lang:   language,
	}
}

// parse parses source code and returns the syntax tree.
// When allowErrors is false a tree whose root contains syntax errors is
// rejected with ErrNoTree.
func (p *parser) parse(ctx context.Context, source []byte, allowErrors bool) (*sitter.Tree, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTree, err)
	}
	if tree == nil {
		return nil, ErrNoTree
	}
	if !allowErrors && tree.RootNode().HasError() {
		tree.Close()
		return nil, fmt.Errorf("%w: %s source has syntax errors", ErrNoTree, p.lang.Name())
	}
	return tree, nil
}

func (p *parser) close() {
	p.parser.Close()
}
