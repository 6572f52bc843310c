package tokenizer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gcbaptista/go-note-linker/config"
)

// wordRegex matches maximal runs of word characters (letters, numbers, underscore).
var wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// IsWordRune reports whether r is a word character. The annotator uses the same
// definition so whole-word matching agrees with tokenization.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// NormalizeTerm lowercases a word, trims surrounding spaces and strips
// trailing non-word characters. "Sistema." becomes "sistema".
func NormalizeTerm(word string) string {
	word = strings.TrimSpace(strings.ToLower(word))
	return strings.TrimRightFunc(word, func(r rune) bool {
		return !IsWordRune(r)
	})
}

// IsAlphabetic reports whether word is non-empty and made only of letters.
func IsAlphabetic(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Tokenize converts body text into the ordered sequence of candidate terms.
// Tokens are lowercased, must reach settings.MinTermLength runes, must be
// purely alphabetic and must not be stopwords. Duplicates are kept so the
// caller can count them.
func Tokenize(text string, settings *config.PipelineSettings) []string {
	words := wordRegex.FindAllString(text, -1)

	terms := make([]string, 0, len(words)) // Initialize as empty slice, not nil
	for _, word := range words {
		term := NormalizeTerm(word)
		if utf8.RuneCountInString(term) < settings.MinTermLength {
			continue
		}
		if !IsAlphabetic(term) {
			continue
		}
		if settings.IsStopword(term) {
			continue
		}
		terms = append(terms, term)
	}
	return terms
}

// WordSpans returns the byte offsets of every maximal word run in text.
func WordSpans(text string) [][2]int {
	locs := wordRegex.FindAllStringIndex(text, -1)
	spans := make([][2]int, len(locs))
	for i, loc := range locs {
		spans[i] = [2]int{loc[0], loc[1]}
	}
	return spans
}
