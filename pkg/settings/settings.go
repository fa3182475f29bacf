/*
Package settings holds the resolved check configuration.

Settings are loaded from a relaxed-JSON file (srcspell.json) and merged with
builtin defaults; the core treats the result as an opaque value object. The
fingerprint derived here keys both the compiled dictionary cache and the
per-file diagnostic cache, so any configuration change invalidates both.
*/
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hjson/hjson-go/v4"

	"github.com/srcspell/srcspell/internal/utils"
)

// DefaultFileName is looked up in the checked directory when no explicit
// settings path is given.
const DefaultFileName = "srcspell.json"

// DictionaryDefinition maps a dictionary name to a word list file.
type DictionaryDefinition struct {
	Name    string   `json:"name"`
	Path    string   `json:"path"`
	Aliases []string `json:"aliases,omitempty"`
}

// Settings is the resolved configuration consumed by the check pipeline.
type Settings struct {
	Dictionaries          []string               `json:"dictionaries"`
	DictionaryDefinitions []DictionaryDefinition `json:"dictionaryDefinitions,omitempty"`
	IgnorePaths           []string               `json:"ignorePaths,omitempty"`
	IgnoreWords           []string               `json:"ignoreWords,omitempty"`
	Words                 []string               `json:"words,omitempty"`
	MaxSuggestions        int                    `json:"maxSuggestions,omitempty"`
	MaxEditDistance       int                    `json:"maxEditDistance,omitempty"`
}

// dictionary name aliases kept for compatibility with foreign settings files.
var nameAliases = map[string]string{
	"en_US":         "en-US",
	"softwareTerms": "software_terms",
	"softwareTools": "software_tools",
}

// Default returns the builtin settings used when no file is present.
func Default() *Settings {
	return &Settings{
		Dictionaries: []string{
			"en-US",
			"extra",
			"software_terms",
			"software_tools",
			"words",
		},
		MaxSuggestions:  5,
		MaxEditDistance: 2,
	}
}

// Load reads and parses the settings file at path, filling unset numeric
// options from defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}

	// hjson decodes into a generic value; round-trip through JSON to get
	// struct field mapping with the same tags.
	var node any
	if err := hjson.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	plain, err := json.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	s := &Settings{}
	if err := json.Unmarshal(plain, s); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}

	def := Default()
	if len(s.Dictionaries) == 0 {
		s.Dictionaries = def.Dictionaries
	}
	if s.MaxSuggestions <= 0 {
		s.MaxSuggestions = def.MaxSuggestions
	}
	if s.MaxEditDistance <= 0 {
		s.MaxEditDistance = def.MaxEditDistance
	}
	return s, nil
}

// LoadOrDefault loads path if it exists, falling back to Default on a
// missing or unreadable file. Parse failures are logged, not fatal.
func LoadOrDefault(path string) *Settings {
	if path == "" {
		path = DefaultFileName
	}
	if !utils.FileExists(path) {
		return Default()
	}
	s, err := Load(path)
	if err != nil {
		log.Warnf("Using default settings: %v", err)
		return Default()
	}
	log.Debugf("Loaded settings from %s", path)
	return s
}

// ResolveDictionaryPaths maps the active dictionary names to word list file
// paths: an explicit definition wins, a known alias is followed, otherwise
// the name resolves to <storeDir>/<name>.txt.
func (s *Settings) ResolveDictionaryPaths(storeDir string) []string {
	paths := make([]string, 0, len(s.Dictionaries))
	for _, name := range s.Dictionaries {
		paths = append(paths, s.resolveOne(name, storeDir))
	}
	return paths
}

func (s *Settings) resolveOne(name, storeDir string) string {
	for _, def := range s.DictionaryDefinitions {
		if def.Name == name {
			return def.Path
		}
		for _, alias := range def.Aliases {
			if alias == name {
				return def.Path
			}
		}
	}
	if canonical, ok := nameAliases[name]; ok {
		return s.resolveOne(canonical, storeDir)
	}
	return filepath.Join(storeDir, name+".txt")
}

// IgnoreSet returns the lowercase ignore-word set, ready for lookup.
func (s *Settings) IgnoreSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.IgnoreWords))
	for _, w := range s.IgnoreWords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// Fingerprint digests everything that influences diagnostics: the resolved
// dictionary set, project words, ignore rules and suggestion bounds. Cached
// results keyed by an old fingerprint become unreachable when any of these
// change.
func (s *Settings) Fingerprint() string {
	parts := []string{
		"max-suggestions:" + strconv.Itoa(s.MaxSuggestions),
		"max-edit-distance:" + strconv.Itoa(s.MaxEditDistance),
	}
	for _, d := range s.Dictionaries {
		parts = append(parts, "dict:"+d)
	}
	for _, def := range s.DictionaryDefinitions {
		parts = append(parts, "def:"+def.Name+"="+def.Path)
	}
	for _, w := range s.Words {
		parts = append(parts, "word:"+strings.ToLower(w))
	}
	for _, w := range s.IgnoreWords {
		parts = append(parts, "ignore:"+strings.ToLower(w))
	}
	for _, p := range s.IgnorePaths {
		parts = append(parts, "ignore-path:"+p)
	}
	return utils.HashStrings(parts)
}
