package model

// Document is a note read from the corpus, split into its structural header
// and the body eligible for annotation.
// Header + Separator + Body reproduces the original bytes.
type Document struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Header    string `json:"header,omitempty"`    // Front matter including both boundary lines, empty when absent
	Separator string `json:"separator,omitempty"` // Line break that followed the closing boundary
	Body      string `json:"body"`
}

// HasHeader reports whether the document carries a structural header.
func (d *Document) HasHeader() bool {
	return d.Header != ""
}

// Span is a half-open byte range [Start, End) of a document body.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// NoteSummary is the lightweight representation returned by note listings.
type NoteSummary struct {
	Path    string   `json:"path"`
	Title   string   `json:"title,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Markers int      `json:"markers"`
	Error   string   `json:"error,omitempty"`
}
