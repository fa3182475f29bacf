package lang

import (
	"github.com/smacker/go-tree-sitter/rust"
)

func init() {
	Languages["rust"] = &Language{
		Name:       "rust",
		Extensions: []string{".rs"},
		lang:       rust.GetLanguage(),
		Classes: map[string]Class{
			"identifier":         Identifier,
			"type_identifier":    Identifier,
			"field_identifier":   Identifier,
			"line_comment":       Comment,
			"block_comment":      Comment,
			"string_literal":     StringLiteral,
			"raw_string_literal": StringLiteral,
			"char_literal":       Ignore,
			"integer_literal":    Ignore,
			"float_literal":      Ignore,
		},
	}
}
