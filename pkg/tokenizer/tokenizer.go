/*
Package tokenizer converts source bytes into a flat, ordered sequence of
classified tokens.

For languages with a registered grammar, the source is parsed with
tree-sitter and the tree is walked depth-first; node kinds listed in the
language's classification table are emitted as Identifier, Comment or
StringLiteral tokens, nodes classified Ignore are skipped subtree and all,
and unmapped nodes are walked through. When no grammar is registered, or
parsing collapses entirely, callers fall back to plain-text mode, which
treats every line of the file as unstructured prose.
*/
package tokenizer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/srcspell/srcspell/pkg/tokenizer/lang"
)

var (
	// ErrUnsupportedLanguage means no grammar is registered for the file's
	// language. Recovered via plain-text fallback.
	ErrUnsupportedLanguage = errors.New("no grammar registered for language")

	// ErrUnparseable means the grammar produced no usable structure for the
	// file. Recovered via plain-text fallback.
	ErrUnparseable = errors.New("source is unparseable")
)

// Kind classifies a token's text span.
type Kind int

const (
	Ignored Kind = iota
	Identifier
	Comment
	StringLiteral
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case Comment:
		return "comment"
	case StringLiteral:
		return "string"
	default:
		return "ignored"
	}
}

// Token is one classified text span. Line and Column are 1-based; Column
// counts bytes.
type Token struct {
	Text      string
	Kind      Kind
	StartByte uint32
	EndByte   uint32
	Line      int
	Column    int
}

// DetectLanguage returns the registered language name for path, or "" when
// the extension is unknown.
func DetectLanguage(path string) string {
	return lang.ForExtension(strings.ToLower(filepath.Ext(path)))
}

// Tokenize parses source as languageID and returns its classified tokens in
// source order. It returns ErrUnsupportedLanguage when no grammar is
// registered and ErrUnparseable when the parse yields no usable structure;
// callers recover from both with TokenizePlainText.
func Tokenize(ctx context.Context, source []byte, languageID string) ([]Token, error) {
	l := lang.ForName(languageID)
	if l == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, languageID)
	}

	parser := l.NewParser()
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.Type() == "ERROR" {
		return nil, fmt.Errorf("%w: no usable parse tree", ErrUnparseable)
	}

	var tokens []Token
	collect(root, l, source, &tokens)
	return tokens, nil
}

// collect walks the tree depth-first, emitting tokens for classified nodes.
// Classified nodes are not descended into: their text is taken whole.
func collect(node *sitter.Node, l *lang.Language, source []byte, out *[]Token) {
	if cls, mapped := l.Classes[node.Type()]; mapped {
		if cls == lang.Ignore {
			return
		}
		*out = append(*out, Token{
			Text:      lang.NodeText(node, source),
			Kind:      kindOf(cls),
			StartByte: node.StartByte(),
			EndByte:   node.EndByte(),
			Line:      int(node.StartPoint().Row) + 1,
			Column:    int(node.StartPoint().Column) + 1,
		})
		return
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		collect(node.NamedChild(i), l, source, out)
	}
}

func kindOf(cls lang.Class) Kind {
	switch cls {
	case lang.Identifier:
		return Identifier
	case lang.Comment:
		return Comment
	case lang.StringLiteral:
		return StringLiteral
	default:
		return Ignored
	}
}

// TokenizePlainText is the degraded fallback for files without a usable
// grammar: every line becomes one Comment-class token checked as prose.
// Shebang lines are skipped.
func TokenizePlainText(source []byte) []Token {
	var tokens []Token
	offset := 0
	lineNo := 0
	for offset < len(source) {
		lineNo++
		rel := bytes.IndexByte(source[offset:], '\n')
		var line []byte
		var next int
		if rel < 0 {
			line = source[offset:]
			next = len(source)
		} else {
			line = source[offset : offset+rel]
			next = offset + rel + 1
		}

		if lineNo == 1 && bytes.HasPrefix(line, []byte("#!")) {
			offset = next
			continue
		}
		if len(bytes.TrimSpace(line)) > 0 {
			tokens = append(tokens, Token{
				Text:      string(line),
				Kind:      Comment,
				StartByte: uint32(offset),
				EndByte:   uint32(offset + len(line)),
				Line:      lineNo,
				Column:    1,
			})
		}
		offset = next
	}
	return tokens
}
