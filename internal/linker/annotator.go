// Package linker rewrites occurrences of selected terms into [[reference]]
// markers without touching existing markers or protected regions.
package linker

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gcbaptista/go-note-linker/internal/markdown"
	"github.com/gcbaptista/go-note-linker/internal/tokenizer"
	"github.com/gcbaptista/go-note-linker/model"
)

// Annotator links the terms of one term list. It holds no mutable state and
// can be shared by concurrent annotation workers.
type Annotator struct {
	terms []string
}

// NewAnnotator prepares the match order for terms: longest first (in runes),
// ties in term-list order. Case-insensitive duplicates and entries that are not
// a single word are dropped.
func NewAnnotator(terms model.TermList) *Annotator {
	seen := make(map[string]struct{}, len(terms))
	ordered := make([]string, 0, len(terms))
	for _, term := range terms {
		word := strings.ToLower(strings.TrimSpace(term.Text))
		if !isWord(word) {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		ordered = append(ordered, word)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return utf8.RuneCountInString(ordered[i]) > utf8.RuneCountInString(ordered[j])
	})
	return &Annotator{terms: ordered}
}

// NewAnnotatorFromWords is NewAnnotator for a plain list of words.
func NewAnnotatorFromWords(words []string) *Annotator {
	terms := make(model.TermList, len(words))
	for i, word := range words {
		terms[i] = model.Term{Text: word}
	}
	return NewAnnotator(terms)
}

// Terms returns the terms in match order.
func (a *Annotator) Terms() []string {
	return append([]string(nil), a.terms...)
}

// Annotate returns body with every linkable whole-word, case-insensitive
// occurrence of the terms wrapped as [[Occurrence]], keeping its casing.
// Existing markers and the protected spans are copied verbatim; brackets
// inside protected spans are ignored when looking for markers. When nothing
// is linked the very same string is returned.
func (a *Annotator) Annotate(body string, protected ...model.Span) string {
	if len(a.terms) == 0 || body == "" {
		return body
	}

	protected = mergeSpans(protected, len(body))
	scan := markdown.Blank(body, protected)
	inert := mergeSpans(append(MarkerSpans(scan), protected...), len(body))
	pending := openRegions(scan)

	var out strings.Builder
	changed := false
	pos := 0
	for _, span := range inert {
		if span.Start > pos {
			changed = a.linkSegment(&out, body, pos, span.Start, pending) || changed
		}
		out.WriteString(body[span.Start:span.End])
		pos = span.End
	}
	if pos < len(body) {
		changed = a.linkSegment(&out, body, pos, len(body), pending) || changed
	}

	if !changed {
		return body
	}
	return out.String()
}

// linkSegment writes body[start:end] to out, wrapping linkable words. Each
// word run is linked at most once; a linked run is never revisited by the
// remaining, shorter terms.
func (a *Annotator) linkSegment(out *strings.Builder, body string, start, end int, pending []bool) bool {
	segment := body[start:end]
	words := tokenizer.WordSpans(segment)
	linked := make([]bool, len(words))
	matched := false

	for _, term := range a.terms {
		for i, w := range words {
			if linked[i] {
				continue
			}
			s, e := start+w[0], start+w[1]
			if !strings.EqualFold(body[s:e], term) {
				continue
			}
			if !linkable(body, s, e, pending) {
				continue
			}
			linked[i] = true
			matched = true
		}
	}

	if !matched {
		out.WriteString(segment)
		return false
	}

	last := 0
	for i, w := range words {
		if !linked[i] {
			continue
		}
		out.WriteString(segment[last:w[0]])
		out.WriteString(MarkerOpen)
		out.WriteString(segment[w[0]:w[1]])
		out.WriteString(MarkerClose)
		last = w[1]
	}
	out.WriteString(segment[last:])
	return true
}

// linkable reports whether the word body[s:e] may be wrapped. The word must be
// a whole word of the full body (a protected span may cut a run), must not
// touch a bracket, so Markdown link text like [word](url) stays a link, and
// must not follow an unclosed "[[".
func linkable(body string, s, e int, pending []bool) bool {
	if s > 0 {
		if body[s-1] == '[' {
			return false
		}
		if r, _ := utf8.DecodeLastRuneInString(body[:s]); tokenizer.IsWordRune(r) {
			return false
		}
	}
	if e < len(body) {
		if body[e] == ']' {
			return false
		}
		if r, _ := utf8.DecodeRuneInString(body[e:]); tokenizer.IsWordRune(r) {
			return false
		}
	}
	if pending != nil && pending[s] {
		return false
	}
	return true
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !tokenizer.IsWordRune(r) {
			return false
		}
	}
	return true
}
