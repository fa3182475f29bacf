package dictionary

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"

	"github.com/srcspell/srcspell/internal/utils"
	"github.com/srcspell/srcspell/pkg/wordlist"
)

// FileFormat represents foreign dictionary file formats seen by import.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatWordList             // Plain text, one word per line
	FormatGzipWordList         // Gzip-compressed word list
	FormatCompiled             // Our own compiled msgpack form
	FormatCspellTrie           // cspell trie encoding (not importable)
)

// FormatInfo describes one recognized dictionary file format.
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	Importable  bool
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatWordList: {
		Format:      FormatWordList,
		Description: "Plain Text Word List",
		Extensions:  []string{".txt", ".dic"},
		Importable:  true,
	},
	FormatGzipWordList: {
		Format:      FormatGzipWordList,
		Description: "Gzip Word List",
		Extensions:  []string{".gz"},
		Importable:  true,
	},
	FormatCompiled: {
		Format:      FormatCompiled,
		Description: "Compiled Dictionary",
		Extensions:  []string{".bin"},
		Importable:  false,
	},
	FormatCspellTrie: {
		Format:      FormatCspellTrie,
		Description: "cspell Trie Dictionary",
		Extensions:  []string{".trie"},
		Importable:  false,
	},
}

// cspell trie files open with a shebang-style reader line or a TrieX
// version marker.
var cspellTrieMagics = [][]byte{
	[]byte("#!/usr/bin/env cspell-trie"),
	[]byte("TrieXv"),
}

// DetectFormat classifies the dictionary file at path by extension and,
// where that is ambiguous, by sniffing its leading bytes.
func DetectFormat(path string) (FileFormat, error) {
	base := strings.ToLower(filepath.Base(path))
	ext := filepath.Ext(base)
	if ext == ".gz" {
		inner := filepath.Ext(strings.TrimSuffix(base, ".gz"))
		if inner == ".trie" {
			return FormatCspellTrie, nil
		}
		return FormatGzipWordList, nil
	}

	switch ext {
	case ".trie":
		return FormatCspellTrie, nil
	case ".bin":
		return FormatCompiled, nil
	case ".txt", ".dic", "":
		// Extension says word list, but cspell trie files are sometimes
		// shipped as .txt. Sniff to be sure.
		head, err := readHead(path, 64)
		if err != nil {
			return FormatUnknown, err
		}
		for _, magic := range cspellTrieMagics {
			if bytes.HasPrefix(head, magic) {
				return FormatCspellTrie, nil
			}
		}
		return FormatWordList, nil
	}
	return FormatUnknown, fmt.Errorf("unable to detect dictionary format for %s", path)
}

// Import copies a foreign dictionary into destDir as a normalized flat word
// list and returns the destination path. Trie-encoded cspell dictionaries
// are rejected with ErrUnsupportedFormat rather than silently producing an
// empty dictionary.
func Import(src, destDir string) (string, error) {
	format, err := DetectFormat(src)
	if err != nil {
		return "", err
	}
	info, ok := supportedFormats[format]
	if !ok {
		return "", fmt.Errorf("import %s: %w", src, ErrUnsupportedFormat)
	}
	if !info.Importable {
		return "", fmt.Errorf("import %s (%s): %w", src, info.Description, ErrUnsupportedFormat)
	}

	list, err := wordlist.Load(src)
	if err != nil {
		return "", fmt.Errorf("import %s: %w", src, err)
	}
	if len(list.Words) == 0 {
		return "", fmt.Errorf("import %s: list is empty", src)
	}

	dest := filepath.Join(destDir, list.Name+".txt")
	var buf bytes.Buffer
	for _, w := range list.Words {
		buf.WriteString(w)
		buf.WriteByte('\n')
	}
	if err := utils.AtomicWriteFile(dest, buf.Bytes()); err != nil {
		return "", fmt.Errorf("import %s: %w", src, err)
	}
	log.Debugf("Imported dictionary %q: %d words -> %s", list.Name, len(list.Words), dest)
	return dest, nil
}

// readHead returns up to n leading bytes of the file at path, transparently
// decompressing gzip.
func readHead(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	if magic, err := r.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		head := make([]byte, n)
		m, _ := gz.Read(head)
		return head[:m], nil
	}
	head := make([]byte, n)
	m, _ := r.Read(head)
	return head[:m], nil
}
