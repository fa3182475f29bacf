package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/srcspell/srcspell/pkg/checker"
	"github.com/srcspell/srcspell/pkg/dictionary"
)

func sampleResult() *checker.Result {
	return &checker.Result{
		Diagnostics: []checker.Diagnostic{
			{
				FilePath: "src/app.js",
				Word:     "sever",
				Line:     1,
				Column:   9,
				Offset:   8,
				Suggestions: []dictionary.Suggestion{
					{Word: "server", Distance: 1, Score: 0.83},
					{Word: "seven", Distance: 1, Score: 0.8},
				},
				Severity: checker.SeverityWarning,
			},
		},
		Errors: []*checker.FileError{
			{Path: "bin/data", Err: errors.New("permission denied")},
		},
	}
}

func TestTextReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := (Text{Suggestions: 1}).Report(&buf, sampleResult()); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	want := `src/app.js:1:9: unknown word "sever" (did you mean server?)` + "\n" +
		"bin/data: skipped: permission denied\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestTextReportNoSuggestions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := (Text{}).Report(&buf, sampleResult()); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "did you mean") {
		t.Errorf("suggestions shown with cap 0: %q", buf.String())
	}
}

func TestJSONReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := (JSON{}).Report(&buf, sampleResult()); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Diagnostics []checker.Diagnostic `json:"diagnostics"`
		Skipped     []struct {
			File  string `json:"file"`
			Error string `json:"error"`
		} `json:"skipped"`
		Summary struct {
			Issues  int `json:"issues"`
			Skipped int `json:"skipped"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Summary.Issues != 1 || doc.Summary.Skipped != 1 {
		t.Errorf("summary = %+v", doc.Summary)
	}
	if len(doc.Diagnostics) != 1 || doc.Diagnostics[0].Word != "sever" {
		t.Errorf("diagnostics = %+v", doc.Diagnostics)
	}
	if len(doc.Skipped) != 1 || doc.Skipped[0].Error != "permission denied" {
		t.Errorf("skipped = %+v", doc.Skipped)
	}
}

func TestJSONReportEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := (JSON{}).Report(&buf, &checker.Result{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"diagnostics": []`) {
		t.Errorf("empty result should emit an empty array: %s", buf.String())
	}
}
