package dictionary

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/srcspell/srcspell/internal/utils"
	"github.com/srcspell/srcspell/pkg/wordlist"
)

// formatVersion tags compiled cache files. Bump on any layout change so
// stale bytes trigger a rebuild instead of being misread.
const formatVersion = "srcspell-dict-v1"

// compiledFile is the on-disk form of a compiled dictionary.
type compiledFile struct {
	Version string   `msgpack:"v"`
	Key     string   `msgpack:"k"`
	Words   []string `msgpack:"w"`
}

// LoadError records a word list that could not be read. It satisfies
// errors.Is(err, ErrLoadFailed).
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("word list %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is lets callers match any LoadError against ErrLoadFailed.
func (e *LoadError) Is(target error) bool { return target == ErrLoadFailed }

// Compiler builds dictionaries from word list files, caching the compiled
// form on disk keyed by a content hash of all inputs.
type Compiler struct {
	cacheDir string
}

// NewCompiler returns a compiler persisting compiled dictionaries under
// cacheDir.
func NewCompiler(cacheDir string) *Compiler {
	return &Compiler{cacheDir: cacheDir}
}

// Compile builds a Dictionary from the word lists at paths plus any extra
// in-memory lists (project words, user allow lists). Unreadable paths are
// reported in the returned slice and skipped; if nothing at all could be
// loaded the error is ErrNoWordLists.
//
// When a cache file matching the inputs exists it is deserialized directly,
// skipping the re-sort and re-merge of the source lists.
func (c *Compiler) Compile(paths []string, extra []*wordlist.List, maxEditDistance int) (*Dictionary, []error, error) {
	var loadErrs []error

	type source struct {
		path string
		data []byte
	}
	var sources []source
	keyParts := []string{formatVersion}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			loadErrs = append(loadErrs, &LoadError{Path: p, Err: err})
			log.Warnf("Skipping word list %s: %v", p, err)
			continue
		}
		sources = append(sources, source{path: p, data: data})
		keyParts = append(keyParts, utils.HashBytes(data))
	}
	for _, l := range extra {
		keyParts = append(keyParts, utils.HashStrings(l.Words))
	}
	if len(sources) == 0 && len(extra) == 0 {
		return nil, loadErrs, ErrNoWordLists
	}

	key := utils.HashStrings(keyParts)
	cachePath := c.cachePath(key)

	if d, err := c.loadCompiled(cachePath, key, maxEditDistance); err == nil {
		log.Debugf("Compiled dictionary cache hit: %s", cachePath)
		return d, loadErrs, nil
	} else if !os.IsNotExist(err) {
		log.Warnf("Compiled dictionary cache unusable, rebuilding: %v", err)
	}

	lists := make([]*wordlist.List, 0, len(sources)+len(extra))
	for _, src := range sources {
		l, err := wordlist.Load(src.path)
		if err != nil {
			loadErrs = append(loadErrs, &LoadError{Path: src.path, Err: err})
			log.Warnf("Skipping word list %s: %v", src.path, err)
			continue
		}
		lists = append(lists, l)
	}
	lists = append(lists, extra...)
	if len(lists) == 0 {
		return nil, loadErrs, ErrNoWordLists
	}

	d := Build(lists, maxEditDistance)

	if err := c.storeCompiled(cachePath, key, d); err != nil {
		log.Warnf("Failed to persist compiled dictionary: %v", err)
	}
	return d, loadErrs, nil
}

// cachePath derives the cache file name from the input key.
func (c *Compiler) cachePath(key string) string {
	return filepath.Join(c.cacheDir, fmt.Sprintf("dict_%s.bin", key[:16]))
}

// loadCompiled reads a compiled dictionary file, verifying both the format
// version and the input key before trusting it.
func (c *Compiler) loadCompiled(path, key string, maxEditDistance int) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file compiledFile
	if err := msgpack.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	if file.Version != formatVersion {
		return nil, fmt.Errorf("%w: version %q, want %q", ErrCorruptCache, file.Version, formatVersion)
	}
	if file.Key != key {
		return nil, fmt.Errorf("%w: stale input key", ErrCorruptCache)
	}
	if maxEditDistance < 1 {
		maxEditDistance = DefaultMaxEditDistance
	}
	return fromSortedWords(file.Words, maxEditDistance), nil
}

// storeCompiled writes the compiled form atomically so a concurrent reader
// never observes a partial file.
func (c *Compiler) storeCompiled(path, key string, d *Dictionary) error {
	data, err := msgpack.Marshal(compiledFile{
		Version: formatVersion,
		Key:     key,
		Words:   d.Words(),
	})
	if err != nil {
		return err
	}
	return utils.AtomicWriteFile(path, data)
}
