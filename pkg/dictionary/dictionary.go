/*
Package dictionary builds and queries the merged word index.

The index has two halves: a patricia trie for exact membership tests and a
deletion-automaton spelling model for bounded edit distance candidate
enumeration. Both are populated once at build time from sorted, deduplicated
word lists and never mutated afterwards, so a Dictionary can be shared
read-only across any number of checker workers without locking.
*/
package dictionary

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/log"
	"github.com/sajari/fuzzy"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/srcspell/srcspell/pkg/wordlist"
)

// DefaultMaxEditDistance bounds suggestion search when settings give none.
const DefaultMaxEditDistance = 2

// Suggestion is one correction candidate for a misspelled word.
type Suggestion struct {
	Word     string  `msgpack:"w" json:"word"`
	Distance int     `msgpack:"d" json:"distance"`
	Score    float64 `msgpack:"s" json:"score"`
}

// Dictionary is an immutable merged word index. Safe for concurrent
// read-only use after Build returns.
type Dictionary struct {
	trie     *patricia.Trie
	model    *fuzzy.Model
	words    []string
	maxDepth int
}

// Build merges the given lists into a single index. Words are sorted and
// deduplicated before insertion; the suggestion model is trained to
// enumerate candidates up to maxEditDistance edits away.
func Build(lists []*wordlist.List, maxEditDistance int) *Dictionary {
	if maxEditDistance < 1 {
		maxEditDistance = DefaultMaxEditDistance
	}

	var merged []string
	for _, l := range lists {
		merged = append(merged, l.Words...)
	}
	sort.Strings(merged)
	merged = dedupeSorted(merged)

	d := fromSortedWords(merged, maxEditDistance)
	log.Debugf("Built dictionary: %d words from %d lists, depth %d",
		len(merged), len(lists), maxEditDistance)
	return d
}

// fromSortedWords indexes an already sorted, deduplicated, lowercase word
// slice. The sorted-input precondition lets cache loads skip normalization.
func fromSortedWords(words []string, maxEditDistance int) *Dictionary {
	trie := patricia.NewTrie()
	model := fuzzy.NewModel()
	model.SetThreshold(1)
	model.SetDepth(maxEditDistance)
	model.SetUseAutocomplete(false)

	for _, w := range words {
		trie.Insert(patricia.Prefix(w), struct{}{})
		model.TrainWord(w)
	}

	return &Dictionary{
		trie:     trie,
		model:    model,
		words:    words,
		maxDepth: maxEditDistance,
	}
}

// Contains reports whether word is in the dictionary. Matching is case
// insensitive; the index is canonically lowercase.
func (d *Dictionary) Contains(word string) bool {
	if d == nil || word == "" {
		return false
	}
	return d.trie.Get(patricia.Prefix(strings.ToLower(word))) != nil
}

// Suggest returns indexed words within maxDistance edits of word, ordered
// by increasing distance, then by descending string similarity, then
// lexicographically. At most maxResults entries are returned when
// maxResults is positive.
func (d *Dictionary) Suggest(word string, maxDistance, maxResults int) []Suggestion {
	if d == nil || word == "" {
		return nil
	}
	if maxDistance < 1 || maxDistance > d.maxDepth {
		maxDistance = d.maxDepth
	}
	query := strings.ToLower(word)

	candidates := d.model.Suggestions(query, false)

	seen := make(map[string]struct{}, len(candidates))
	suggestions := make([]Suggestion, 0, len(candidates))
	for _, cand := range candidates {
		cand = strings.ToLower(cand)
		if _, dup := seen[cand]; dup {
			continue
		}
		seen[cand] = struct{}{}
		if !d.Contains(cand) {
			continue
		}
		dist := levenshtein.ComputeDistance(query, cand)
		if dist > maxDistance {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Word:     cand,
			Distance: dist,
			Score:    lcsRatio(query, cand),
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Word < b.Word
	})

	if maxResults > 0 && len(suggestions) > maxResults {
		suggestions = suggestions[:maxResults]
	}
	return suggestions
}

// Size returns the number of indexed words.
func (d *Dictionary) Size() int {
	return len(d.words)
}

// Words exposes the sorted indexed words for persistence. Callers must not
// modify the returned slice.
func (d *Dictionary) Words() []string {
	return d.words
}

// dedupeSorted removes adjacent duplicates from a sorted slice in place.
func dedupeSorted(words []string) []string {
	if len(words) < 2 {
		return words
	}
	out := words[:1]
	for _, w := range words[1:] {
		if w != out[len(out)-1] {
			out = append(out, w)
		}
	}
	return out
}

// lcsRatio scores string similarity as 2*LCS(a,b)/(len(a)+len(b)),
// used only to break ties between equal-distance candidates.
func lcsRatio(a, b string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	lcs := prev[len(rb)]
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}
