package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadRelaxedJSON(t *testing.T) {
	t.Parallel()

	// Trailing commas and comments are allowed.
	content := `{
  // project dictionaries
  dictionaries: ["en-US", "project"],
  dictionaryDefinitions: [
    {name: "project", path: "./words.txt"},
  ],
  ignoreWords: ["xyzzy"],
  words: ["srcspell"],
  maxSuggestions: 3,
}`
	path := filepath.Join(t.TempDir(), "srcspell.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]string{"en-US", "project"}, s.Dictionaries); diff != "" {
		t.Errorf("dictionaries mismatch (-want +got):\n%s", diff)
	}
	if s.MaxSuggestions != 3 {
		t.Errorf("MaxSuggestions = %d, want 3", s.MaxSuggestions)
	}
	if s.MaxEditDistance != Default().MaxEditDistance {
		t.Errorf("MaxEditDistance = %d, want default", s.MaxEditDistance)
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	t.Parallel()

	s := LoadOrDefault(filepath.Join(t.TempDir(), "nope.json"))
	if diff := cmp.Diff(Default(), s); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveDictionaryPaths(t *testing.T) {
	t.Parallel()

	s := &Settings{
		Dictionaries: []string{"project", "en_US", "extra"},
		DictionaryDefinitions: []DictionaryDefinition{
			{Name: "project", Path: "/repo/words.txt"},
		},
	}
	got := s.ResolveDictionaryPaths("/store")
	want := []string{
		"/repo/words.txt",
		filepath.Join("/store", "en-US.txt"), // alias followed
		filepath.Join("/store", "extra.txt"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestFingerprintChangesWithConfig(t *testing.T) {
	t.Parallel()

	base := Default()
	fp := base.Fingerprint()

	if fp != Default().Fingerprint() {
		t.Fatal("fingerprint not stable across identical settings")
	}

	changed := Default()
	changed.IgnoreWords = []string{"xyzzy"}
	if changed.Fingerprint() == fp {
		t.Error("fingerprint unchanged after ignoreWords edit")
	}

	changed = Default()
	changed.MaxEditDistance = 1
	if changed.Fingerprint() == fp {
		t.Error("fingerprint unchanged after maxEditDistance edit")
	}

	changed = Default()
	changed.Words = []string{"srcspell"}
	if changed.Fingerprint() == fp {
		t.Error("fingerprint unchanged after words edit")
	}
}

func TestIgnoreSet(t *testing.T) {
	t.Parallel()

	s := &Settings{IgnoreWords: []string{"Foo", "BAR"}}
	set := s.IgnoreSet()
	for _, w := range []string{"foo", "bar"} {
		if _, ok := set[w]; !ok {
			t.Errorf("ignore set missing %q", w)
		}
	}
}
