package tsalert

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
)

// Language defines the interface for a grammar a run can be bound to.
type Language interface {
	// Name returns the language identifier (e.g., "c", "go").
	Name() string

	// Extensions returns file extensions for this language (e.g., [".c", ".h"]).
	Extensions() []string

	// TreeSitterLang returns the tree-sitter language grammar.
	TreeSitterLang() *sitter.Language

	// IdentifierKind returns the node kind of a name token.
	IdentifierKind() string

	// FunctionKinds returns the node kinds that delimit a function scope.
	FunctionKinds() []string
}

// registry holds all registered languages.
var registry = make(map[string]Language)

// Register adds a language to the registry.
// This is typically called from init() functions in language implementation files.
func Register(lang Language) {
	registry[lang.Name()] = lang
}

// Get returns a language by name, or nil if not found.
func Get(name string) Language {
	return registry[name]
}

// List returns all registered language names, sorted.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByExtension finds a language by file extension.
func ByExtension(ext string) Language {
	for _, lang := range registry {
		for _, e := range lang.Extensions() {
			if e == ext {
				return lang
			}
		}
	}
	return nil
}
