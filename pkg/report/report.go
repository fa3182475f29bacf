/*
Package report renders check results for humans and for tools.

The text reporter writes one grep-friendly line per diagnostic; the JSON
reporter emits a single document with diagnostics, skipped files, and
summary counts.
*/
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/srcspell/srcspell/pkg/checker"
)

// Reporter writes a check result to an output stream.
type Reporter interface {
	Report(w io.Writer, res *checker.Result) error
}

// Text renders diagnostics as path:line:col lines, the format editors and
// CI log scrapers already understand.
type Text struct {
	// Suggestions caps how many suggestions appear per line. Zero hides
	// them entirely.
	Suggestions int
}

func (t Text) Report(w io.Writer, res *checker.Result) error {
	for _, d := range res.Diagnostics {
		line := fmt.Sprintf("%s:%d:%d: unknown word %q", d.FilePath, d.Line, d.Column, d.Word)
		if t.Suggestions > 0 && len(d.Suggestions) > 0 {
			n := t.Suggestions
			if n > len(d.Suggestions) {
				n = len(d.Suggestions)
			}
			words := make([]string, n)
			for i := 0; i < n; i++ {
				words[i] = d.Suggestions[i].Word
			}
			line += fmt.Sprintf(" (did you mean %s?)", strings.Join(words, ", "))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	for _, fe := range res.Errors {
		if _, err := fmt.Fprintf(w, "%s: skipped: %v\n", fe.Path, fe.Err); err != nil {
			return err
		}
	}
	return nil
}

// JSON renders the whole result as one indented document.
type JSON struct{}

type jsonReport struct {
	Diagnostics []checker.Diagnostic `json:"diagnostics"`
	Skipped     []jsonSkipped        `json:"skipped,omitempty"`
	Summary     jsonSummary          `json:"summary"`
}

type jsonSkipped struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

type jsonSummary struct {
	Issues  int `json:"issues"`
	Skipped int `json:"skipped"`
}

func (JSON) Report(w io.Writer, res *checker.Result) error {
	doc := jsonReport{
		Diagnostics: res.Diagnostics,
		Summary: jsonSummary{
			Issues:  len(res.Diagnostics),
			Skipped: len(res.Errors),
		},
	}
	if doc.Diagnostics == nil {
		doc.Diagnostics = []checker.Diagnostic{}
	}
	for _, fe := range res.Errors {
		doc.Skipped = append(doc.Skipped, jsonSkipped{File: fe.Path, Error: fe.Err.Error()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
