/*
Package wordlist loads raw word lists into immutable, deduplicated sets.

A word list is a plain text file with one word per line. Blank lines and
lines starting with '#' or '//' are skipped. Files ending in .gz are
transparently decompressed. Words are lowercased on load so the dictionary
index only ever sees one casing.
*/
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
)

// List is an identifier-tagged, ordered set of lowercase words.
// Immutable once loaded: no duplicates, sorted ascending.
type List struct {
	Name  string
	Words []string
}

// Load reads the word list at path. The list name is derived from the file
// name without its extension.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	name := filepath.Base(path)
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip word list %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
		name = strings.TrimSuffix(name, ".gz")
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))

	list, err := Read(name, r)
	if err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}
	log.Debugf("Loaded word list %q: %d words", list.Name, len(list.Words))
	return list, nil
}

// Read parses one word per line from r into a named list.
func Read(name string, r io.Reader) (*List, error) {
	seen := make(map[string]struct{})
	var words []string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		word := strings.ToLower(line)
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	sort.Strings(words)
	return &List{Name: name, Words: words}, nil
}

// FromWords builds a list from in-memory words, applying the same
// normalization as Read. Used for project-local allow lists.
func FromWords(name string, words []string) *List {
	seen := make(map[string]struct{}, len(words))
	var out []string
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return &List{Name: name, Words: out}
}
