package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func covered(body, sub string, spans []spanLike) bool {
	start := strings.Index(body, sub)
	if start < 0 {
		return false
	}
	end := start + len(sub)
	for _, s := range spans {
		if s.start <= start && end <= s.end {
			return true
		}
	}
	return false
}

type spanLike struct{ start, end int }

func codeSpans(body string) []spanLike {
	var out []spanLike
	for _, s := range CodeSpans(body) {
		out = append(out, spanLike{s.Start, s.End})
	}
	return out
}

func TestCodeSpans_FencedBlock(t *testing.T) {
	body := "texto grafo\n\n```python\nimport grafo\n```\n\nfin"
	spans := codeSpans(body)

	assert.True(t, covered(body, "import grafo", spans))
	assert.True(t, covered(body, "python", spans))
	assert.False(t, covered(body, "texto grafo", spans))
}

func TestCodeSpans_InlineCode(t *testing.T) {
	body := "usa `grafo.nodo` para el grafo"
	spans := codeSpans(body)

	assert.True(t, covered(body, "grafo.nodo", spans))
	assert.False(t, covered(body, "el grafo", spans))
}

func TestCodeSpans_IndentedBlock(t *testing.T) {
	body := "Parrafo\n\n    codigo grafo\n\nfin"
	spans := codeSpans(body)

	assert.True(t, covered(body, "codigo grafo", spans))
}

func TestCodeSpans_NoCode(t *testing.T) {
	assert.Empty(t, CodeSpans("solo texto [[grafo]]"))
}

func TestBlank(t *testing.T) {
	body := "a `bc` d"
	got := Blank(body, CodeSpans(body))
	assert.Equal(t, "a `  ` d", got)
	assert.Equal(t, len(body), len(got))

	assert.Equal(t, "x\ny", Blank("x\ny", nil))
}
