package linker

import (
	"sort"
	"strings"

	"github.com/gcbaptista/go-note-linker/model"
)

const (
	// MarkerOpen starts a reference marker.
	MarkerOpen = "[["
	// MarkerClose ends a reference marker.
	MarkerClose = "]]"
)

// MarkerSpans returns the byte ranges of every reference marker in text, in
// order. A marker is "[[", at least one byte other than ']', then "]]".
// Unbalanced brackets are not markers and stay plain text.
func MarkerSpans(text string) []model.Span {
	var spans []model.Span
	for i := 0; i+len(MarkerOpen) <= len(text); {
		if !strings.HasPrefix(text[i:], MarkerOpen) {
			i++
			continue
		}
		contentStart := i + len(MarkerOpen)
		j := strings.IndexByte(text[contentStart:], MarkerClose[0])
		if j > 0 && strings.HasPrefix(text[contentStart+j:], MarkerClose) {
			end := contentStart + j + len(MarkerClose)
			spans = append(spans, model.Span{Start: i, End: end})
			i = end
			continue
		}
		i++
	}
	return spans
}

// CountMarkers returns the number of reference markers in text.
func CountMarkers(text string) int {
	return len(MarkerSpans(text))
}

// mergeSpans clamps spans to [0, limit), sorts them and merges overlapping or
// touching ranges.
func mergeSpans(spans []model.Span, limit int) []model.Span {
	clamped := make([]model.Span, 0, len(spans))
	for _, s := range spans {
		if s.Start < 0 {
			s.Start = 0
		}
		if s.End > limit {
			s.End = limit
		}
		if s.End > s.Start {
			clamped = append(clamped, s)
		}
	}
	sort.Slice(clamped, func(i, j int) bool {
		return clamped[i].Start < clamped[j].Start
	})

	merged := make([]model.Span, 0, len(clamped))
	for _, s := range clamped {
		if n := len(merged); n > 0 && s.Start <= merged[n-1].End {
			if s.End > merged[n-1].End {
				merged[n-1].End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// openRegions marks every byte position that follows an unclosed "[[", that
// is, a "[[" with no ']' between it and the position. Wrapping a word there
// would let the stray opening capture the new marker. Returns nil when text
// holds no "[[" at all.
func openRegions(text string) []bool {
	if !strings.Contains(text, MarkerOpen) {
		return nil
	}
	pending := make([]bool, len(text)+1)
	open := false
	for i := 0; i < len(text); i++ {
		pending[i] = open
		switch {
		case text[i] == ']':
			open = false
		case strings.HasPrefix(text[i:], MarkerOpen):
			open = true
		}
	}
	pending[len(text)] = open
	return pending
}
