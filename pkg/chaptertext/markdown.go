package chaptertext

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// mdParser is a goldmark instance with the GFM extensions chapter sources
// commonly use.
var mdParser = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
	),
)

func loadMarkdown(source []byte) *Document {
	doc := &Document{Paragraphs: []string{}}
	if len(source) == 0 {
		return doc
	}

	root := mdParser.Parser().Parse(text.NewReader(source))
	c := &paragraphCollector{source: source, doc: doc}
	c.collectChildren(root)
	return doc
}

// paragraphCollector flattens block nodes into paragraph strings.
type paragraphCollector struct {
	source []byte
	doc    *Document
}

func (c *paragraphCollector) collectChildren(n ast.Node) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.collect(child)
	}
}

func (c *paragraphCollector) collect(n ast.Node) {
	switch node := n.(type) {
	case *ast.Heading:
		title := c.inlineText(node)
		if c.doc.Title == "" {
			c.doc.Title = title
			return
		}
		c.add(title)
	case *ast.Paragraph, *ast.TextBlock:
		c.add(c.inlineText(node))
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.ThematicBreak:
		// not prose
	default:
		// lists, blockquotes and tables hold paragraphs further down
		c.collectChildren(node)
	}
}

func (c *paragraphCollector) add(s string) {
	if s != "" {
		c.doc.Paragraphs = append(c.doc.Paragraphs, s)
	}
}

// inlineText returns the plain text under n with whitespace collapsed.
func (c *paragraphCollector) inlineText(n ast.Node) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := child.(type) {
		case *ast.Text:
			b.Write(unescape(node.Segment.Value(c.source)))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.AutoLink:
			b.Write(node.Label(c.source))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return collapse(b.String())
}

func unescape(b []byte) []byte {
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	return util.ResolveEntityNames(b)
}
