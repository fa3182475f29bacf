package wordlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
)

func TestRead(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"# comment",
		"// also a comment",
		"",
		"Server",
		"http",
		"server",
		"  cache  ",
	}, "\n")

	list, err := Read("terms", strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []string{"cache", "http", "server"}
	if diff := cmp.Diff(want, list.Words); diff != "" {
		t.Errorf("words mismatch (-want +got):\n%s", diff)
	}
	if list.Name != "terms" {
		t.Errorf("Name = %q, want %q", list.Name, "terms")
	}
}

func TestLoadPlainFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "en-test.txt")
	if err := os.WriteFile(path, []byte("alpha\nbeta\nalpha\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	list, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if list.Name != "en-test" {
		t.Errorf("Name = %q, want %q", list.Name, "en-test")
	}
	if diff := cmp.Diff([]string{"alpha", "beta"}, list.Words); diff != "" {
		t.Errorf("words mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadGzipFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "packed.txt.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte("gamma\ndelta\n")); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	list, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if list.Name != "packed" {
		t.Errorf("Name = %q, want %q", list.Name, "packed")
	}
	if diff := cmp.Diff([]string{"delta", "gamma"}, list.Words); diff != "" {
		t.Errorf("words mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("Load of missing file succeeded, want error")
	}
}

func TestFromWords(t *testing.T) {
	t.Parallel()

	list := FromWords("project", []string{"Zeta", "alpha", "", "zeta"})
	if diff := cmp.Diff([]string{"alpha", "zeta"}, list.Words); diff != "" {
		t.Errorf("words mismatch (-want +got):\n%s", diff)
	}
}
