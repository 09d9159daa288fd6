package dictionary

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"

	"github.com/Code-Monger/SpellSpinneret/pkg/levenshtein"
)

const (
	// DefaultSuggestionCount is the number of suggestions returned when the
	// caller does not ask for a specific count.
	DefaultSuggestionCount = 5

	// bruteForceLimit is the dictionary size under which every word is
	// scored directly instead of asking the fuzzy model.
	bruteForceLimit = 5000

	// maxSuggestDistance is the largest edit distance offered as a
	// suggestion.
	maxSuggestDistance = 3
)

// Suggestion is a replacement candidate for a misspelled word.
type Suggestion struct {
	Word       string  `json:"word"`
	Distance   int     `json:"distance"`
	Similarity float32 `json:"similarity"`
}

// Suggest returns up to n replacement candidates for word, closest first.
// Candidates are ordered by edit distance, then by Jaro-Winkler similarity.
func Suggest(c Collection, word string, n int) []Suggestion {
	if n <= 0 {
		n = DefaultSuggestionCount
	}
	target := Normalize(word)
	if target == "" {
		return nil
	}

	seen := make(map[string]bool)
	var out []Suggestion
	consider := func(candidate string) {
		if candidate == target || seen[candidate] {
			return
		}
		seen[candidate] = true
		dist := levenshtein.Distance(target, candidate)
		if dist > maxSuggestDistance {
			return
		}
		sim, err := edlib.StringsSimilarity(target, candidate, edlib.JaroWinkler)
		if err != nil {
			sim = 0
		}
		out = append(out, Suggestion{Word: candidate, Distance: dist, Similarity: sim})
	}

	for _, d := range c {
		if d == nil {
			continue
		}
		if d.Len() <= bruteForceLimit {
			for _, w := range d.Words() {
				if abs(utf8.RuneCountInString(w)-utf8.RuneCountInString(target)) <= maxSuggestDistance {
					consider(w)
				}
			}
			continue
		}
		for _, w := range d.fuzzyModel().SpellCheckSuggestions(target, n*4) {
			consider(w)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > n {
		out = out[:n]
	}
	for i := range out {
		out[i].Word = matchCase(word, out[i].Word)
	}
	return out
}

// matchCase applies the capitalization of original to candidate: all upper
// case or a leading capital.
func matchCase(original, candidate string) string {
	hasLetter, allUpper := false, true
	for _, r := range original {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				allUpper = false
			}
		}
	}
	if hasLetter && allUpper && utf8.RuneCountInString(original) > 1 {
		return strings.ToUpper(candidate)
	}
	first, _ := utf8.DecodeRuneInString(original)
	if unicode.IsUpper(first) {
		r, size := utf8.DecodeRuneInString(candidate)
		return string(unicode.ToUpper(r)) + candidate[size:]
	}
	return candidate
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
