package lang

import (
	"github.com/smacker/go-tree-sitter/ruby"
)

func init() {
	Languages["ruby"] = &Language{
		Name:       "ruby",
		Extensions: []string{".rb", ".rake"},
		lang:       ruby.GetLanguage(),
		Classes: map[string]Class{
			"identifier":        Identifier,
			"constant":          Identifier,
			"instance_variable": Identifier,
			"class_variable":    Identifier,
			"global_variable":   Identifier,
			"simple_symbol":     Identifier,
			"comment":           Comment,
			"string":            StringLiteral,
			"heredoc_body":      StringLiteral,
			"integer":           Ignore,
			"float":             Ignore,
			"regex":             Ignore,
		},
	}
}
