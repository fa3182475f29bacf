package lang

import (
	"github.com/smacker/go-tree-sitter/c"
)

func init() {
	Languages["c"] = &Language{
		Name:       "c",
		Extensions: []string{".c", ".h"},
		lang:       c.GetLanguage(),
		Classes: map[string]Class{
			"identifier":       Identifier,
			"field_identifier": Identifier,
			"type_identifier":  Identifier,
			"comment":          Comment,
			"string_literal":   StringLiteral,
			"char_literal":     Ignore,
			"number_literal":   Ignore,
			"preproc_include":  Ignore, // header paths are not prose
		},
	}
}
