package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/srcspell/srcspell/pkg/wordlist"
)

func writeList(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompileRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	listPath := writeList(t, dir, "en.txt", "server\nhttp\nerror\nname\n")

	c := NewCompiler(cacheDir)
	first, loadErrs, err := c.Compile([]string{listPath}, nil, 2)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(loadErrs) != 0 {
		t.Fatalf("unexpected load errors: %v", loadErrs)
	}

	// Second compile must come from the persisted cache and behave the same.
	second, _, err := c.Compile([]string{listPath}, nil, 2)
	if err != nil {
		t.Fatalf("Compile (cached): %v", err)
	}

	members := []string{"server", "http", "error", "name"}
	nonMembers := []string{"sever", "htpp", "banana"}
	for _, w := range members {
		if !first.Contains(w) || !second.Contains(w) {
			t.Errorf("Contains(%q): first=%v second=%v, want true/true",
				w, first.Contains(w), second.Contains(w))
		}
	}
	for _, w := range nonMembers {
		if first.Contains(w) || second.Contains(w) {
			t.Errorf("Contains(%q): first=%v second=%v, want false/false",
				w, first.Contains(w), second.Contains(w))
		}
	}
}

func TestCompileCacheKeyedByContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	listPath := writeList(t, dir, "en.txt", "server\n")

	c := NewCompiler(cacheDir)
	if _, _, err := c.Compile([]string{listPath}, nil, 2); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	// Changing input content must produce a rebuilt dictionary, not a stale hit.
	writeList(t, dir, "en.txt", "server\nbanana\n")
	d, _, err := c.Compile([]string{listPath}, nil, 2)
	if err != nil {
		t.Fatalf("Compile after change: %v", err)
	}
	if !d.Contains("banana") {
		t.Error("rebuilt dictionary missing new word; stale cache served")
	}
}

func TestCompileCorruptCacheRebuilds(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	listPath := writeList(t, dir, "en.txt", "server\n")

	c := NewCompiler(cacheDir)
	if _, _, err := c.Compile([]string{listPath}, nil, 2); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	// Smash every cache file.
	entries, err := os.ReadDir(cacheDir)
	if err != nil || len(entries) == 0 {
		t.Fatalf("no cache files written (err=%v)", err)
	}
	for _, e := range entries {
		if err := os.WriteFile(filepath.Join(cacheDir, e.Name()), []byte("garbage"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	d, _, err := c.Compile([]string{listPath}, nil, 2)
	if err != nil {
		t.Fatalf("Compile after corruption: %v", err)
	}
	if !d.Contains("server") {
		t.Error("rebuilt dictionary missing indexed word")
	}
}

func TestCompileMissingListContinues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeList(t, dir, "good.txt", "server\n")
	missing := filepath.Join(dir, "missing.txt")

	c := NewCompiler(filepath.Join(dir, "cache"))
	d, loadErrs, err := c.Compile([]string{good, missing}, nil, 2)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(loadErrs) != 1 {
		t.Fatalf("load errors = %v, want exactly one", loadErrs)
	}
	if !errors.Is(loadErrs[0], ErrLoadFailed) {
		t.Errorf("load error %v does not match ErrLoadFailed", loadErrs[0])
	}
	if !d.Contains("server") {
		t.Error("surviving list not merged")
	}
}

func TestCompileNothingLoadable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c := NewCompiler(filepath.Join(dir, "cache"))
	_, _, err := c.Compile([]string{filepath.Join(dir, "absent.txt")}, nil, 2)
	if !errors.Is(err, ErrNoWordLists) {
		t.Fatalf("err = %v, want ErrNoWordLists", err)
	}
}

func TestCompileExtraLists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c := NewCompiler(filepath.Join(dir, "cache"))
	project := wordlist.FromWords("project", []string{"srcspell"})
	d, _, err := c.Compile(nil, []*wordlist.List{project}, 2)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !d.Contains("srcspell") {
		t.Error("project words not merged into dictionary")
	}
}

func TestImportRejectsCspellTrie(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	trie := writeList(t, dir, "en.trie", "TrieXv3\nbase=10\n")
	if _, err := Import(trie, dir); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Import(.trie) err = %v, want ErrUnsupportedFormat", err)
	}

	// Same bytes behind a .txt extension are caught by sniffing.
	sneaky := writeList(t, dir, "sneaky.txt", "TrieXv3\nbase=10\n")
	format, err := DetectFormat(sneaky)
	if err != nil {
		t.Fatalf("DetectFormat: %v", err)
	}
	if format != FormatCspellTrie {
		t.Errorf("DetectFormat = %v, want FormatCspellTrie", format)
	}
}

func TestImportNormalizesWordList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeList(t, dir, "terms.txt", "# header\nZeta\nalpha\n\nzeta\n")
	destDir := filepath.Join(dir, "store")

	dest, err := Import(src, destDir)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "alpha\nzeta\n" {
		t.Errorf("imported content = %q, want normalized sorted list", data)
	}
}
