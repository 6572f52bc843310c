// Package analysis builds the corpus-wide frequency table and ranks the terms
// that are worth turning into reference markers.
package analysis

import (
	"sort"

	"github.com/gcbaptista/go-note-linker/config"
	"github.com/gcbaptista/go-note-linker/internal/tokenizer"
	"github.com/gcbaptista/go-note-linker/model"
)

// FrequencyTable counts terms and remembers the order in which each distinct
// term was first seen. The order breaks ties when ranking.
type FrequencyTable struct {
	counts map[string]int
	order  []string
}

// NewFrequencyTable creates an empty frequency table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[string]int)}
}

// Add counts one occurrence of every given term.
func (t *FrequencyTable) Add(terms ...string) {
	for _, term := range terms {
		if _, seen := t.counts[term]; !seen {
			t.order = append(t.order, term)
		}
		t.counts[term]++
	}
}

// Count returns the number of occurrences recorded for term.
func (t *FrequencyTable) Count(term string) int {
	return t.counts[term]
}

// Len returns the number of distinct terms.
func (t *FrequencyTable) Len() int {
	return len(t.order)
}

// Rank returns the terms counted at least minFrequency times, sorted by count
// descending with ties kept in first-encounter order, truncated to maxTerms.
func (t *FrequencyTable) Rank(minFrequency, maxTerms int) model.TermList {
	ranked := make(model.TermList, 0)
	for _, term := range t.order {
		if count := t.counts[term]; count >= minFrequency {
			ranked = append(ranked, model.Term{Text: term, Count: count})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if maxTerms >= 0 && len(ranked) > maxTerms {
		ranked = ranked[:maxTerms]
	}
	return ranked
}

// Analyzer aggregates document bodies into a frequency table.
// It is not safe for concurrent use: documents are fed sequentially so the
// first-encounter order, and therefore the ranking, is deterministic.
type Analyzer struct {
	settings  *config.PipelineSettings
	table     *FrequencyTable
	documents int
}

// NewAnalyzer creates an analyzer using the thresholds and stopwords of settings.
func NewAnalyzer(settings *config.PipelineSettings) *Analyzer {
	return &Analyzer{
		settings: settings,
		table:    NewFrequencyTable(),
	}
}

// AddDocument tokenizes a document body (header already removed) and counts its terms.
func (a *Analyzer) AddDocument(body string) {
	a.table.Add(tokenizer.Tokenize(body, a.settings)...)
	a.documents++
}

// Documents returns the number of bodies added so far.
func (a *Analyzer) Documents() int {
	return a.documents
}

// Table exposes the underlying frequency table.
func (a *Analyzer) Table() *FrequencyTable {
	return a.table
}

// TermList ranks the counted terms. An empty list means nothing qualifies and
// annotation should be skipped; it is not an error.
func (a *Analyzer) TermList() model.TermList {
	return a.table.Rank(a.settings.MinFrequency, a.settings.MaxTerms)
}

// Analyze is a convenience wrapper that adds every body in order and ranks the result.
func (a *Analyzer) Analyze(bodies []string) model.TermList {
	for _, body := range bodies {
		a.AddDocument(body)
	}
	return a.TermList()
}
