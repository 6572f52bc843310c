// Package markdown locates Markdown regions that must not be analyzed or
// annotated, such as fenced code blocks and inline code spans.
package markdown

import (
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/gcbaptista/go-note-linker/model"
)

// CodeSpans returns the byte ranges of code in body: the lines of fenced and
// indented code blocks, the info string of fences, and inline code spans.
// Ranges are sorted by start offset.
func CodeSpans(body string) []model.Span {
	source := []byte(body)
	root := goldmark.New().Parser().Parse(text.NewReader(source))

	var spans []model.Span
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			if node.Info != nil {
				spans = append(spans, segmentSpan(node.Info.Segment))
			}
			spans = append(spans, lineSpans(node.Lines())...)
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			spans = append(spans, lineSpans(node.Lines())...)
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if t, ok := child.(*ast.Text); ok {
					spans = append(spans, segmentSpan(t.Segment))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})
	return spans
}

// Blank replaces the bytes covered by spans with spaces, keeping offsets and
// line structure intact. Used to hide code from term analysis.
func Blank(body string, spans []model.Span) string {
	if len(spans) == 0 {
		return body
	}
	out := []byte(body)
	for _, s := range spans {
		for i := s.Start; i < s.End && i < len(out); i++ {
			if out[i] != '\n' {
				out[i] = ' '
			}
		}
	}
	return string(out)
}

func lineSpans(lines *text.Segments) []model.Span {
	spans := make([]model.Span, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		spans = append(spans, segmentSpan(lines.At(i)))
	}
	return spans
}

func segmentSpan(seg text.Segment) model.Span {
	return model.Span{Start: seg.Start, End: seg.Stop}
}
