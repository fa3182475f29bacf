/*
Package splitter breaks code tokens into checkable lowercase sub-words.

Identifiers are segmented on casing transitions (camelCase, acronym runs),
explicit delimiters and digit boundaries. Free text from comments and string
literals is first cut on punctuation and whitespace, then each chunk goes
through the same identifier segmentation so embedded identifiers inside doc
comments still split correctly.

Splitting is deterministic and pure: the same input always yields the same
sequence of fragments.
*/
package splitter

import (
	"strings"
	"unicode"

	"mvdan.cc/xurls/v2"
)

// DefaultMinLength is the minimum fragment length kept after splitting.
const DefaultMinLength = 2

// minNakedHex is the shortest run of bare hex digits treated as a hex blob
// rather than a word ("cafe" stays a word, "deadbeef1234" does not).
const minNakedHex = 8

var urlRe = xurls.Strict()

// Fragment is a single lowercase sub-word with its byte offset in the
// original token text.
type Fragment struct {
	Text   string
	Offset int
}

// Splitter segments raw token text into fragments.
type Splitter struct {
	minLen int
}

// New returns a Splitter keeping fragments of at least minLen bytes.
// A minLen below 1 falls back to DefaultMinLength.
func New(minLen int) *Splitter {
	if minLen < 1 {
		minLen = DefaultMinLength
	}
	return &Splitter{minLen: minLen}
}

// SplitIdentifier splits an identifier-class token into fragments.
// Structural non-words (hex literals, URLs, file paths, punctuation) yield
// no fragments at all.
func (s *Splitter) SplitIdentifier(token string) []Fragment {
	if token == "" || isStructural(token) {
		return nil
	}
	return s.segment(token, 0)
}

// SplitText splits free text (comments, string literals) into fragments.
// The text is cut on whitespace and punctuation first; each surviving chunk
// is segmented like an identifier. URLs inside the text are masked out.
func (s *Splitter) SplitText(text string) []Fragment {
	if text == "" {
		return nil
	}
	masked := maskURLs(text)

	var frags []Fragment
	start := -1
	for i, r := range masked {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			frags = append(frags, s.splitChunk(masked[start:i], start)...)
			start = -1
		}
	}
	if start >= 0 {
		frags = append(frags, s.splitChunk(masked[start:], start)...)
	}
	return frags
}

// splitChunk handles one whitespace-delimited chunk of free text.
func (s *Splitter) splitChunk(chunk string, offset int) []Fragment {
	// Possessive and elided suffixes are not separate words.
	for _, suf := range []string{"'s", "'d", "'ed", "'th"} {
		if strings.HasSuffix(chunk, suf) {
			chunk = strings.TrimSuffix(chunk, suf)
			break
		}
	}
	chunk = strings.Trim(chunk, "'")
	if chunk == "" || isStructural(chunk) {
		return nil
	}
	return s.segment(chunk, offset)
}

// segment walks token left to right emitting fragments at casing and
// delimiter boundaries. base is added to every fragment offset.
func (s *Splitter) segment(token string, base int) []Fragment {
	runes := []rune(token)
	// Byte offset of each rune, plus the terminating length.
	offs := make([]int, len(runes)+1)
	{
		o := 0
		for i, r := range runes {
			offs[i] = o
			o += len(string(r))
		}
		offs[len(runes)] = o
	}

	var frags []Fragment
	emit := func(from, to int) {
		if from < 0 || from >= to {
			return
		}
		text := string(runes[from:to])
		if len(text) < s.minLen {
			return
		}
		if !hasLetter(text) {
			// Standalone numeric runs are dropped, not emitted.
			return
		}
		frags = append(frags, Fragment{
			Text:   strings.ToLower(text),
			Offset: base + offs[from],
		})
	}

	start := -1
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			// Explicit delimiter: '_', '-', or any other punctuation.
			emit(start, i)
			start = -1
		case unicode.IsDigit(r):
			// Digits end the current word and are never part of one.
			emit(start, i)
			start = -1
		case unicode.IsUpper(r):
			if start < 0 {
				start = i
				continue
			}
			prev := runes[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				// camelCase boundary.
				emit(start, i)
				start = i
			} else if i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				// Acronym run followed by a regular word: HTTPServer.
				emit(start, i)
				start = i
			}
		default: // lowercase letter
			if start < 0 {
				start = i
			}
		}
	}
	emit(start, len(runes))
	return frags
}

// isStructural reports whether token is a non-word artifact that must not
// be spell checked: hex blobs, rune escapes, URLs, file paths, numbers.
func isStructural(token string) bool {
	if isHexLiteral(token) || isHexRune(token) {
		return true
	}
	if looksLikePath(token) {
		return true
	}
	if u := urlRe.FindString(token); u == token {
		return true
	}
	return false
}

// isHexLiteral reports whether token is a 0x/0X-prefixed literal or a long
// naked run of hex digits such as a commit hash or digest.
func isHexLiteral(token string) bool {
	body := token
	if strings.HasPrefix(token, "0x") || strings.HasPrefix(token, "0X") {
		body = token[2:]
		return body != "" && isHex(body)
	}
	return len(body) >= minNakedHex && isHex(body)
}

// isHex reports whether all bytes of s are hex digits.
func isHex(s string) bool {
	for _, b := range s {
		b |= 'a' - 'A' // Lower case in the relevant range.
		if (b < '0' || '9' < b) && (b < 'a' || 'f' < b) {
			return false
		}
	}
	return true
}

// isHexRune reports whether word can be interpreted as a \x, \u, \U or
// octal rune escape.
func isHexRune(word string) bool {
	if len(word) < 4 || word[0] != '\\' {
		return false
	}
	switch word[1] {
	case 'x':
		return len(word) == 4 && isHex(word[2:4])
	case 'u':
		return len(word) == 6 && isHex(word[2:6])
	case 'U':
		return len(word) == 10 && isHex(word[2:10])
	default:
		for _, c := range word[1:] {
			if c < '0' || '7' < c {
				return false
			}
		}
		return true
	}
}

// looksLikePath reports whether token resembles a filesystem path.
func looksLikePath(token string) bool {
	if !strings.ContainsAny(token, "/\\") {
		return false
	}
	return !strings.ContainsAny(token, " \t")
}

// maskURLs blanks out every URL in text so the scanner skips them while
// offsets of the surrounding words stay valid.
func maskURLs(text string) string {
	locs := urlRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}
	b := []byte(text)
	for _, loc := range locs {
		for i := loc[0]; i < loc[1]; i++ {
			b[i] = ' '
		}
	}
	return string(b)
}

// isWordRune reports whether r can appear inside a free-text chunk.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '\''
}

// hasLetter reports whether s contains at least one letter.
func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
