package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		header    string
		separator string
		body      string
	}{
		{
			name:      "standard front matter",
			input:     "---\ntitle: \"Uno\"\n---\n\n## Idea\nUno",
			header:    "---\ntitle: \"Uno\"\n---",
			separator: "\n",
			body:      "\n## Idea\nUno",
		},
		{
			name:   "no front matter",
			input:  "## Idea\nsin cabecera",
			header: "",
			body:   "## Idea\nsin cabecera",
		},
		{
			name:   "unterminated front matter",
			input:  "---\ntitle: x\nbody without end",
			header: "",
			body:   "---\ntitle: x\nbody without end",
		},
		{
			name:   "boundary not on first line",
			input:  "intro\n---\na\n---\nbody",
			header: "",
			body:   "intro\n---\na\n---\nbody",
		},
		{
			name:      "windows line endings",
			input:     "---\r\nid: 1\r\n---\r\nbody\r\n",
			header:    "---\r\nid: 1\r\n---",
			separator: "\r\n",
			body:      "body\r\n",
		},
		{
			name:      "header at end of file",
			input:     "---\nid: 1\n---",
			header:    "---\nid: 1\n---",
			separator: "",
			body:      "",
		},
		{
			name:      "dashes inside values do not close",
			input:     "---\ntitle: a---b\n---\nbody --- text",
			header:    "---\ntitle: a---b\n---",
			separator: "\n",
			body:      "body --- text",
		},
		{
			name:   "single boundary only",
			input:  "---",
			header: "",
			body:   "---",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Split("notes/a.md", tt.input)
			assert.Equal(t, tt.header, doc.Header)
			assert.Equal(t, tt.separator, doc.Separator)
			assert.Equal(t, tt.body, doc.Body)
			assert.Equal(t, "a.md", doc.Name)
			assert.Equal(t, tt.input, Join(doc), "Join must reproduce the original bytes")
		})
	}
}

func TestJoin_InsertsSingleLineBreak(t *testing.T) {
	doc := Split("a.md", "---\nid: 1\n---")
	doc.Body = "[[nuevo]] cuerpo"
	assert.Equal(t, "---\nid: 1\n---\n[[nuevo]] cuerpo", Join(doc))
}

func TestMetadata(t *testing.T) {
	doc := Split("a.md", "---\nid: \"idea-001\"\ntitle: \"Grafos\"\ntags:\n  - redes\n  - grafos\n---\n\ncuerpo")

	meta, err := Metadata(doc)
	require.NoError(t, err)
	assert.Equal(t, "idea-001", meta["id"])
	assert.Equal(t, "Grafos", meta["title"])

	summary := Summary(doc, 2)
	assert.Equal(t, "Grafos", summary.Title)
	assert.Equal(t, []string{"redes", "grafos"}, summary.Tags)
	assert.Equal(t, 2, summary.Markers)
	assert.Empty(t, summary.Error)
}

func TestMetadata_NoHeader(t *testing.T) {
	meta, err := Metadata(Split("a.md", "solo cuerpo"))
	require.NoError(t, err)
	assert.Empty(t, meta)
}

func TestSummary_InvalidYAML(t *testing.T) {
	doc := Split("a.md", "---\ntitle: [unclosed\n---\nbody")
	summary := Summary(doc, 0)
	assert.NotEmpty(t, summary.Error)
	assert.Empty(t, summary.Title)
}
