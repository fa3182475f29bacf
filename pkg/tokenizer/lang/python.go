package lang

import (
	"github.com/smacker/go-tree-sitter/python"
)

func init() {
	Languages["python"] = &Language{
		Name:       "python",
		Extensions: []string{".py"},
		lang:       python.GetLanguage(),
		Classes: map[string]Class{
			"identifier":      Identifier,
			"comment":         Comment,
			"string":          StringLiteral,
			"integer":         Ignore,
			"float":           Ignore,
			"escape_sequence": Ignore,
		},
	}
}
