/*
Package checker runs the spell check pipeline: tokenize each file, split
tokens into words, test them against the dictionary, and aggregate
diagnostics deterministically across parallel workers.
*/
package checker

import (
	"fmt"

	"github.com/srcspell/srcspell/pkg/dictionary"
)

// Severity grades a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityInfo {
		return "info"
	}
	return "warning"
}

// Diagnostic reports one misspelled word occurrence. Repeated misspellings
// in the same file produce one Diagnostic each, since every location is
// independently actionable.
type Diagnostic struct {
	FilePath    string                  `msgpack:"f" json:"file"`
	Word        string                  `msgpack:"w" json:"word"`
	Line        int                     `msgpack:"l" json:"line"`
	Column      int                     `msgpack:"c" json:"column"`
	Offset      uint32                  `msgpack:"o" json:"offset"`
	Suggestions []dictionary.Suggestion `msgpack:"s" json:"suggestions,omitempty"`
	Severity    Severity                `msgpack:"v" json:"severity"`
}

// File is one input to the pipeline: a path plus its bytes. Content may be
// nil, in which case the pipeline reads the file itself.
type File struct {
	Path    string
	Content []byte
}

// FileError records a file the pipeline could not process. The run
// continues; the file simply contributes no diagnostics.
type FileError struct {
	Path string `json:"file"`
	Err  error  `json:"-"`
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Result aggregates a whole run: diagnostics sorted by file path and
// location, plus per-file failures.
type Result struct {
	Diagnostics []Diagnostic
	Errors      []*FileError
}
