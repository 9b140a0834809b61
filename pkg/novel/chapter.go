package novel

// Chapter is an ordered list of paragraphs sharing one registry.
type Chapter struct {
	Number int
	Title  string

	registry   *Registry
	novel      NovelContext
	paragraphs []*Paragraph
}

// NewChapter creates a chapter holding one empty paragraph. A nil registry
// selects Default().
func NewChapter(number int, title string, reg *Registry) *Chapter {
	if reg == nil {
		reg = Default()
	}
	c := &Chapter{Number: number, Title: title, registry: reg}
	c.paragraphs = []*Paragraph{c.newParagraph(0)}
	return c
}

// ParseChapter builds a chapter from paragraph texts.
func ParseChapter(number int, title string, paragraphs []string, reg *Registry) *Chapter {
	c := NewChapter(number, title, reg)
	for _, text := range paragraphs {
		c.BreakParagraph()
		c.PushText(text)
	}
	return c
}

// WithNovel sets the novel context handed to paragraphs created from now on.
func (c *Chapter) WithNovel(novel NovelContext) *Chapter {
	c.novel = novel
	for i, p := range c.paragraphs {
		if p.Len() == 0 {
			c.paragraphs[i] = c.newParagraph(i)
		}
	}
	return c
}

func (c *Chapter) newParagraph(index int) *Paragraph {
	ctx := &ParseContext{
		Novel:     c.novel,
		Chapter:   ChapterContext{Number: c.Number, Title: c.Title},
		Paragraph: ParagraphContext{Index: index},
	}
	return NewParagraph(c.registry, ctx)
}

// PushToken feeds a raw word to the current paragraph. Empty words are
// dropped.
func (c *Chapter) PushToken(word string) *Chapter {
	if word == "" {
		return c
	}
	c.current().PushToken(NewToken(word))
	return c
}

// PushText tokenizes text and feeds every token to the current paragraph.
func (c *Chapter) PushText(text string) *Chapter {
	p := c.current()
	for _, t := range Tokenize(text) {
		p.PushToken(t)
	}
	return c
}

// BreakParagraph starts a new paragraph unless the current one is still
// empty.
func (c *Chapter) BreakParagraph() *Chapter {
	if c.current().Len() == 0 {
		return c
	}
	c.paragraphs = append(c.paragraphs, c.newParagraph(len(c.paragraphs)))
	return c
}

func (c *Chapter) current() *Paragraph {
	return c.paragraphs[len(c.paragraphs)-1]
}

// Paragraphs returns the paragraphs that hold at least one element.
func (c *Chapter) Paragraphs() []*Paragraph {
	out := make([]*Paragraph, 0, len(c.paragraphs))
	for _, p := range c.paragraphs {
		if p.Len() > 0 {
			out = append(out, p)
		}
	}
	return out
}

// Registry returns the registry the chapter classifies with.
func (c *Chapter) Registry() *Registry {
	return c.registry
}

// Counts returns the number of elements per kind across the chapter.
func (c *Chapter) Counts() map[Kind]int {
	counts := make(map[Kind]int)
	for _, p := range c.paragraphs {
		for _, el := range p.elements {
			counts[el.Kind()]++
		}
	}
	return counts
}
