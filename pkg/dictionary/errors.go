package dictionary

import "errors"

var (
	// ErrLoadFailed marks a source word list that is missing or unreadable.
	// The list is excluded from the merged dictionary; the run continues.
	ErrLoadFailed = errors.New("word list load failed")

	// ErrUnsupportedFormat marks a foreign dictionary format that cannot be
	// imported, such as a trie-encoded cspell file. No partial dictionary is
	// produced.
	ErrUnsupportedFormat = errors.New("dictionary format not supported")

	// ErrCorruptCache marks a compiled dictionary cache file that failed to
	// deserialize or carries a mismatched format version. Treated as a miss.
	ErrCorruptCache = errors.New("compiled dictionary cache corrupt")

	// ErrNoWordLists means not a single source list could be loaded. This is
	// configuration-fundamental and aborts the run.
	ErrNoWordLists = errors.New("no usable word lists")
)
