package lang

import (
	"github.com/smacker/go-tree-sitter/javascript"
)

func init() {
	Languages["javascript"] = &Language{
		Name:       "javascript",
		Extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
		lang:       javascript.GetLanguage(),
		Classes: map[string]Class{
			"identifier":                     Identifier,
			"property_identifier":            Identifier,
			"shorthand_property_identifier":  Identifier,
			"statement_identifier":           Identifier,
			"comment":                        Comment,
			"string":                         StringLiteral,
			"template_string":                StringLiteral,
			"regex":                          Ignore,
			"number":                         Ignore,
		},
	}
}
