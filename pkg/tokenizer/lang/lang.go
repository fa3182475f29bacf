// Package lang provides a language registry mapping file extensions to
// tree-sitter grammars and their node classification tables.
package lang

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// Class tells the tokenizer how to treat a syntax node's text.
type Class int

const (
	// Ignore marks nodes whose text must never be spell checked.
	Ignore Class = iota
	// Identifier nodes get strict camel/snake splitting.
	Identifier
	// Comment nodes get loose free-text splitting.
	Comment
	// StringLiteral nodes get loose free-text splitting.
	StringLiteral
)

// Language holds the tree-sitter grammar and classification table for one
// supported language. Classes maps syntax node kinds to how their text is
// checked; node kinds absent from the table are walked through, not
// extracted.
type Language struct {
	Name       string
	Extensions []string
	lang       *sitter.Language
	Classes    map[string]Class
}

// GetLanguage returns the tree-sitter Language pointer.
func (l *Language) GetLanguage() *sitter.Language {
	return l.lang
}

// NewParser creates a fresh tree-sitter parser for this language.
// Each goroutine must use its own parser (not thread-safe).
func (l *Language) NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(l.lang)
	return p
}

// Languages maps language names to their configuration.
// Populated by init() functions in per-language files.
var Languages = map[string]*Language{}

// extensionMap is built lazily after all init() functions have run.
var extensionMap map[string]string
var extensionOnce sync.Once

func getExtensionMap() map[string]string {
	extensionOnce.Do(func() {
		extensionMap = make(map[string]string)
		for _, l := range Languages {
			for _, ext := range l.Extensions {
				extensionMap[ext] = l.Name
			}
		}
	})
	return extensionMap
}

// ForExtension returns the language name for a file extension, or "" if
// unsupported.
func ForExtension(ext string) string {
	return getExtensionMap()[ext]
}

// ForName returns the registered language, or nil if unsupported.
func ForName(name string) *Language {
	return Languages[name]
}

// NodeText returns the source text of a tree-sitter node.
func NodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
