package installer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestInstallLocalFile(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "colors.txt")
	if err := os.WriteFile(src, []byte("red\nBLUE\nred\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := t.TempDir()

	installed, err := Install(context.Background(), src, store)
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(installed)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "blue\nred\n" {
		t.Errorf("installed content = %q, want normalized sorted list", got)
	}
	if filepath.Base(installed) != "colors.txt" {
		t.Errorf("installed name = %s, want colors.txt", filepath.Base(installed))
	}
}

func TestInstallFromURL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("gamma\nalpha\n"))
	}))
	defer srv.Close()

	store := t.TempDir()
	installed, err := Install(context.Background(), srv.URL+"/terms.txt", store)
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(installed)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "alpha\ngamma\n" {
		t.Errorf("installed content = %q", got)
	}
}

func TestInstallURLNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	if _, err := Install(context.Background(), srv.URL+"/missing.txt", t.TempDir()); err == nil {
		t.Fatal("expected error for 404 response")
	}
}
