package tsalert

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/python"
)

// DefaultLanguage is the grammar used when a run does not name one.
const DefaultLanguage = "c"

func init() {
	Register(&C{})
	Register(&CPP{})
	Register(&Go{})
	Register(&Python{})
}

// C implements the Language interface for C source code.
type C struct{}

func (l *C) Name() string                     { return "c" }
func (l *C) Extensions() []string             { return []string{".c", ".h"} }
func (l *C) TreeSitterLang() *sitter.Language { return c.GetLanguage() }
func (l *C) IdentifierKind() string           { return "identifier" }
func (l *C) FunctionKinds() []string          { return []string{"function_definition"} }

// CPP implements the Language interface for C++ source code.
type CPP struct{}

func (l *CPP) Name() string { return "cpp" }
func (l *CPP) Extensions() []string {
	return []string{".cpp", ".cc", ".cxx", ".hpp", ".hxx"}
}
func (l *CPP) TreeSitterLang() *sitter.Language { return cpp.GetLanguage() }
func (l *CPP) IdentifierKind() string           { return "identifier" }
func (l *CPP) FunctionKinds() []string {
	return []string{"function_definition", "lambda_expression"}
}

// Go implements the Language interface for Go source code.
type Go struct{}

func (l *Go) Name() string                     { return "go" }
func (l *Go) Extensions() []string             { return []string{".go"} }
func (l *Go) TreeSitterLang() *sitter.Language { return golang.GetLanguage() }
func (l *Go) IdentifierKind() string           { return "identifier" }
func (l *Go) FunctionKinds() []string {
	return []string{"function_declaration", "method_declaration", "func_literal"}
}

// Python implements the Language interface for Python source code.
type Python struct{}

func (l *Python) Name() string                     { return "python" }
func (l *Python) Extensions() []string             { return []string{".py", ".pyi"} }
func (l *Python) TreeSitterLang() *sitter.Language { return python.GetLanguage() }
func (l *Python) IdentifierKind() string           { return "identifier" }
func (l *Python) FunctionKinds() []string {
	return []string{"function_definition", "lambda"}
}
