// Package lexicon compiles configured word lists into fuzzy, case-insensitive,
// word-boundary-aware matchers.
package lexicon

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	edlib "github.com/hbollon/go-edlib"
)

// Matcher detects the presence of lexicon entries in a text. A nil Matcher
// matches nothing. Matchers are immutable; a changed word set means a new
// Compile call, never an in-place mutation.
type Matcher struct {
	// entries are lowercased and ordered longest first, so a longer entry
	// wins when several could apply to overlapping text.
	entries   []string
	fuzziness int
	exact     *regexp.Regexp
}

// Compile builds a Matcher for the given word set with the given edit budget
// per matched occurrence. Returns nil when words is empty.
func Compile(words []string, fuzziness int) *Matcher {
	seen := make(map[string]struct{}, len(words))
	entries := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		entries = append(entries, w)
	}
	if len(entries) == 0 {
		return nil
	}

	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i]) != len(entries[j]) {
			return len(entries[i]) > len(entries[j])
		}
		return entries[i] < entries[j]
	})

	escaped := make([]string, len(entries))
	for i, e := range entries {
		escaped[i] = regexp.QuoteMeta(e)
	}
	exact := regexp.MustCompile(`(?i)\b(?:` + strings.Join(escaped, "|") + `)\b`)

	return &Matcher{entries: entries, fuzziness: fuzziness, exact: exact}
}

// Contains reports whether the text contains any lexicon entry, exactly or
// within the matcher's edit budget. Boundaries are respected at the token
// level: an entry never matches inside a longer unrelated word.
func (m *Matcher) Contains(text string) bool {
	if m == nil || text == "" {
		return false
	}
	if m.exact.MatchString(text) {
		return true
	}
	if m.fuzziness == 0 {
		return false
	}

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return false
	}
	for _, entry := range m.entries {
		if m.fuzzyContains(tokens, entry) {
			return true
		}
	}
	return false
}

// fuzzyContains slides a window of as many tokens as the entry has words and
// compares the joined window against the entry.
func (m *Matcher) fuzzyContains(tokens []string, entry string) bool {
	width := len(strings.Fields(entry))
	if width == 0 || width > len(tokens) {
		return false
	}
	for i := 0; i+width <= len(tokens); i++ {
		span := strings.Join(tokens[i:i+width], " ")
		if withinDistance(span, entry, m.fuzziness) {
			return true
		}
	}
	return false
}

func withinDistance(a, b string, budget int) bool {
	diff := utf8.RuneCountInString(a) - utf8.RuneCountInString(b)
	if diff < 0 {
		diff = -diff
	}
	if diff > budget {
		return false
	}
	return edlib.OSADamerauLevenshteinDistance(a, b) <= budget
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
}
