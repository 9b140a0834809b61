package chaptertext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Plain(t *testing.T) {
	data := "First line\nsecond   line\n\n\n\"Third,\" she said.\r\n"
	doc, err := Load([]byte(data), FormatPlain)
	require.NoError(t, err)

	assert.Empty(t, doc.Title)
	assert.Equal(t, []string{"First line second line", `"Third," she said.`}, doc.Paragraphs)
}

func TestLoad_PlainEmpty(t *testing.T) {
	doc, err := Load(nil, FormatPlain)
	require.NoError(t, err)
	assert.Empty(t, doc.Paragraphs)
	assert.NotNil(t, doc.Paragraphs)
}

func TestLoad_Markdown(t *testing.T) {
	data := "# Chapter 1\n\nShe said \"hi\".\n\nNext line\ncontinues *here*.\n\n## Later\n\n```\ncode()\n```\n\n- item one\n- item two\n\n> quoted `text`\n"
	doc, err := Load([]byte(data), FormatMarkdown)
	require.NoError(t, err)

	assert.Equal(t, "Chapter 1", doc.Title)
	assert.Equal(t, []string{
		`She said "hi".`,
		"Next line continues here.",
		"Later",
		"item one",
		"item two",
		"quoted text",
	}, doc.Paragraphs)
}

func TestLoad_MarkdownEscapes(t *testing.T) {
	doc, err := Load([]byte(`\[TN: a pun\] &amp; more`), FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, []string{"[TN: a pun] & more"}, doc.Paragraphs)
}

func TestLoad_HTML(t *testing.T) {
	data := `<html><body>
<h1>Chapter 2</h1>
<script>track()</script>
<p>"Run," he said.</p>
<p>Then <em>silence</em>.</p>
</body></html>`

	doc, err := Load([]byte(data), FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, "Chapter 2", doc.Title)
	assert.Equal(t, []string{`"Run," he said.`, "Then silence."}, doc.Paragraphs)
}

func TestLoad_AutoDetects(t *testing.T) {
	doc, err := Load([]byte("<p>One.</p><p>Two.</p>"), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, []string{"One.", "Two."}, doc.Paragraphs)
}

func TestLoad_UnknownFormat(t *testing.T) {
	_, err := Load([]byte("x"), Format("epub"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported input format")
}

func TestFromHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty input", "", ""},
		{"whitespace input", "  \n", ""},
		{"paragraph", "<p>Hello world</p>", "Hello world"},
		{"style stripped", "<style>p{color:red}</style><p>Hi</p>", "Hi"},
		{"nav stripped", "<nav><a href=\"/next\">Next</a></nav><p>Hi</p>", "Hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromHTML(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
