package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, root, rel string, content []byte) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFilesWalk(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "main.go", []byte("package main\n"))
	writeFile(t, root, "docs/readme.md", []byte("hello\n"))
	writeFile(t, root, "node_modules/dep/index.js", []byte("x\n"))
	writeFile(t, root, ".hidden/secret.txt", []byte("x\n"))
	writeFile(t, root, "image.png", []byte{0x89, 'P', 'N', 'G', 0x00, 0x01})

	got, err := Files(root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"docs/readme.md", "main.go"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
}

func TestFilesGitignore(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, ".gitignore", []byte("*.log\ngenerated/\n"))
	writeFile(t, root, "app.go", []byte("package app\n"))
	writeFile(t, root, "debug.log", []byte("noise\n"))
	writeFile(t, root, "generated/out.go", []byte("package out\n"))

	got, err := Files(root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"app.go"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
}

func TestFilesIgnorePaths(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "keep.txt", []byte("word\n"))
	writeFile(t, root, "skip/notes.txt", []byte("word\n"))
	writeFile(t, root, "third_party/lib.go", []byte("package lib\n"))

	got, err := Files(root, Options{IgnorePaths: []string{"skip/**", "third_party"}})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"keep.txt"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
}

func TestFilesSizeLimit(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "small.txt", []byte("ok\n"))
	big := make([]byte, 33)
	for i := range big {
		big[i] = 'a'
	}
	writeFile(t, root, "big.txt", big)

	got, err := Files(root, Options{MaxFileSize: 32})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"small.txt"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
}

func TestFilesIncludeHidden(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, ".config/settings.txt", []byte("word\n"))

	got, err := Files(root, Options{IncludeHidden: true})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{".config/settings.txt"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
}
