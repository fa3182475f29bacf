package checker

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/srcspell/srcspell/internal/utils"
)

// ErrCorruptCache marks a persisted file cache that failed to deserialize
// or carries a mismatched format version. Treated as a full miss.
var ErrCorruptCache = errors.New("file cache corrupt")

// cacheFormatVersion tags persisted cache files so stale layouts trigger a
// rebuild instead of being misread.
const cacheFormatVersion = "srcspell-filecache-v1"

// FileCache maps (content hash, settings fingerprint) to previously
// computed diagnostics. Safe for concurrent use by pipeline workers; two
// workers storing the same key write equal values, so last-write-wins is
// harmless.
type FileCache struct {
	entries *xsync.MapOf[string, []Diagnostic]
}

// persistedCache is the on-disk form of a FileCache.
type persistedCache struct {
	Version string                  `msgpack:"v"`
	Entries map[string][]Diagnostic `msgpack:"e"`
}

// NewFileCache returns an empty cache.
func NewFileCache() *FileCache {
	return &FileCache{entries: xsync.NewMapOf[string, []Diagnostic]()}
}

func cacheKey(contentHash, fingerprint string) string {
	return contentHash + "\x00" + fingerprint
}

// Lookup returns the diagnostics stored for (contentHash, fingerprint).
// A miss is not an error; it just means the file must be checked.
func (c *FileCache) Lookup(contentHash, fingerprint string) ([]Diagnostic, bool) {
	return c.entries.Load(cacheKey(contentHash, fingerprint))
}

// Store records diagnostics for (contentHash, fingerprint). Entries under
// stale fingerprints are left in place; they become unreachable and are
// dropped by an explicit cache clear.
func (c *FileCache) Store(contentHash, fingerprint string, diags []Diagnostic) {
	if diags == nil {
		diags = []Diagnostic{}
	}
	c.entries.Store(cacheKey(contentHash, fingerprint), diags)
}

// Len returns the number of cached entries.
func (c *FileCache) Len() int {
	return c.entries.Size()
}

// LoadFrom merges a persisted cache file into c. A missing file is a clean
// start; an undecodable or version-mismatched file returns ErrCorruptCache
// and leaves c empty, to be overwritten on the next SaveTo.
func (c *FileCache) LoadFrom(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var file persistedCache
	if err := msgpack.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	if file.Version != cacheFormatVersion {
		return fmt.Errorf("%w: version %q, want %q", ErrCorruptCache, file.Version, cacheFormatVersion)
	}
	for k, v := range file.Entries {
		c.entries.Store(k, v)
	}
	log.Debugf("Loaded file cache: %d entries from %s", len(file.Entries), path)
	return nil
}

// SaveTo persists the cache atomically so no reader ever observes a
// truncated file.
func (c *FileCache) SaveTo(path string) error {
	out := persistedCache{
		Version: cacheFormatVersion,
		Entries: make(map[string][]Diagnostic, c.entries.Size()),
	}
	c.entries.Range(func(k string, v []Diagnostic) bool {
		out.Entries[k] = v
		return true
	})
	data, err := msgpack.Marshal(out)
	if err != nil {
		return err
	}
	return utils.AtomicWriteFile(path, data)
}
