package chaptertext

import (
	"fmt"
	"strings"
)

// Document is a loaded chapter.
type Document struct {
	// Title is the first heading, if the format has headings.
	Title string
	// Paragraphs holds the chapter text, one entry per paragraph, with inline
	// markup removed and whitespace collapsed.
	Paragraphs []string
}

// Load parses data written in format. FormatAuto sniffs the content.
func Load(data []byte, format Format) (*Document, error) {
	if format == FormatAuto || format == "" {
		format = DetectFormat("", data)
	}

	switch format {
	case FormatPlain:
		return loadPlain(data), nil
	case FormatMarkdown:
		return loadMarkdown(data), nil
	case FormatHTML:
		markdown, err := FromHTML(string(data))
		if err != nil {
			return nil, fmt.Errorf("failed to convert HTML chapter: %w", err)
		}
		return loadMarkdown([]byte(markdown)), nil
	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}
}

// loadPlain splits text on blank lines. Lines inside a paragraph are joined
// with a single space.
func loadPlain(data []byte) *Document {
	doc := &Document{Paragraphs: []string{}}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	var current []string
	flush := func() {
		if len(current) > 0 {
			doc.Paragraphs = append(doc.Paragraphs, strings.Join(current, " "))
			current = current[:0]
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = collapse(line)
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return doc
}

// collapse trims s and replaces every whitespace run with one space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
