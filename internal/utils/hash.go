package utils

import (
	"encoding/hex"
	"os"
	"sort"

	"lukechampine.com/blake3"
)

// HashBytes returns the hex-encoded blake3 digest of data.
func HashBytes(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFile returns the hex-encoded blake3 digest of the file at path.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return HashBytes(data), nil
}

// HashStrings digests a set of strings in sorted order, so callers get the
// same fingerprint regardless of how the set was assembled.
func HashStrings(parts []string) string {
	sorted := make([]string, len(parts))
	copy(sorted, parts)
	sort.Strings(sorted)

	h := blake3.New(32, nil)
	for _, s := range sorted {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
