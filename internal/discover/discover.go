// Package discover walks a directory tree and collects the files a check
// run should visit, honoring .gitignore and the settings' ignorePaths.
package discover

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultMaxFileSize is the largest file the walker hands to the checker.
// Word lists and generated blobs above this are almost never worth
// spell checking.
const DefaultMaxFileSize = 1 << 20

var skipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	"node_modules": {},
	"vendor":       {},
	"dist":         {},
	"build":        {},
	"target":       {},
	"__pycache__":  {},
}

// Options tunes a walk. The zero value applies the defaults.
type Options struct {
	// IgnorePaths holds gitignore-style patterns from the settings file,
	// matched against paths relative to the walk root.
	IgnorePaths []string
	// MaxFileSize caps file size in bytes; <= 0 means DefaultMaxFileSize.
	MaxFileSize int64
	// IncludeHidden keeps dotfiles and dot-directories in the walk.
	IncludeHidden bool
}

// Files returns the checkable files under root, relative to root and
// sorted. Unreadable entries are skipped with a debug log rather than
// failing the walk.
func Files(root string, opts Options) ([]string, error) {
	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	gi := loadGitignore(root)
	var userIgnore *ignore.GitIgnore
	if len(opts.IgnorePaths) > 0 {
		userIgnore = ignore.CompileIgnoreLines(opts.IgnorePaths...)
	}

	var results []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Debugf("Skipping %s: %v", path, err)
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[name]; skip {
				return filepath.SkipDir
			}
			if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			return nil
		}
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		if userIgnore != nil && userIgnore.MatchesPath(rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			log.Debugf("Skipping %s: %v", path, err)
			return nil
		}
		if info.Size() > maxSize {
			log.Debugf("Skipping %s: %d bytes exceeds limit", rel, info.Size())
			return nil
		}
		if isBinary(path) {
			return nil
		}

		results = append(results, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(results)
	return results, nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// isBinary sniffs the first kilobyte for NUL bytes, the same heuristic
// git uses to decide whether a file is text.
func isBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	buf := make([]byte, 1024)
	n, err := f.Read(buf)
	if n == 0 || (err != nil && n <= 0) {
		return false
	}
	return bytes.IndexByte(buf[:n], 0) >= 0
}
