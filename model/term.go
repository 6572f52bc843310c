package model

// Term is a normalized candidate word together with its corpus-wide count.
type Term struct {
	Text  string `json:"term"`
	Count int    `json:"count"`
}

// TermList is the ranked, size-bounded set of terms selected for a run.
// It is computed once and shared read-only by every annotation pass.
type TermList []Term

// Words returns the terms without their counts, in rank order.
func (tl TermList) Words() []string {
	words := make([]string, len(tl))
	for i, term := range tl {
		words[i] = term.Text
	}
	return words
}

// Top returns at most n leading terms.
func (tl TermList) Top(n int) TermList {
	if n < 0 || n >= len(tl) {
		return tl
	}
	return tl[:n]
}
