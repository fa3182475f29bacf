package lang

import (
	"github.com/smacker/go-tree-sitter/golang"
)

func init() {
	Languages["go"] = &Language{
		Name:       "go",
		Extensions: []string{".go"},
		lang:       golang.GetLanguage(),
		Classes: map[string]Class{
			"identifier":                  Identifier,
			"field_identifier":            Identifier,
			"type_identifier":             Identifier,
			"package_identifier":          Identifier,
			"label_name":                  Identifier,
			"comment":                     Comment,
			"interpreted_string_literal":  StringLiteral,
			"raw_string_literal":          StringLiteral,
			"rune_literal":                Ignore,
			"int_literal":                 Ignore,
			"float_literal":               Ignore,
			"imaginary_literal":           Ignore,
			"import_spec":                 Ignore, // import paths are not prose
		},
	}
}
