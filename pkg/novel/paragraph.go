package novel

import "strings"

// Paragraph turns a token stream into an ordered element list. Only the last
// element can still receive tokens.
//
// Tokens waiting for classification live on a stack: a token split off while
// resolving an ambiguous boundary is always handled before any token that
// arrived earlier.
type Paragraph struct {
	registry *Registry
	ctx      *ParseContext

	elements []Element
	pending  []Token
	last     EndState

	// raw holds every token as pushed, before classification changed it.
	raw []Token
}

// NewParagraph creates an empty paragraph. A nil registry selects Default(),
// a nil context an empty one.
func NewParagraph(reg *Registry, ctx *ParseContext) *Paragraph {
	if reg == nil {
		reg = Default()
	}
	if ctx == nil {
		ctx = &ParseContext{}
	}
	return &Paragraph{
		registry: reg,
		ctx:      ctx,
		pending:  make([]Token, 0, 10),
		last:     NotFinished(),
	}
}

// PushToken feeds one token and processes everything it produces before
// returning. Empty tokens are ignored.
func (p *Paragraph) PushToken(t Token) *Paragraph {
	if t.IsEmpty() {
		return p
	}
	p.raw = append(p.raw, t)
	p.push(t)

	for len(p.pending) > 0 {
		t := p.pop()

		if len(p.elements) == 0 {
			p.start(t)
			continue
		}

		switch p.last.Kind {
		case StateFinished:
			p.start(t)
		case StateMaybeFinished:
			p.extend(t)
		case StateNotFinishedToken:
			// settle resolves splits as soon as they are produced, so this only
			// triggers for a state set from outside the feed path.
			p.push(t)
			p.settle()
		default:
			p.feed(p.tail(), t)
		}
	}

	return p
}

// start classifies t as the beginning of a new element.
func (p *Paragraph) start(t Token) {
	c := p.registry.Classify(t)
	if !c.Lookahead.IsEmpty() {
		p.push(c.Lookahead)
	}
	p.elements = append(p.elements, c.Element)

	el := c.Element
	if promoted, ok := p.promote(el, c.Token); ok {
		p.elements[len(p.elements)-1] = promoted
		el = promoted
	}
	p.feed(el, c.Token)
}

// extend continues the last element when t classifies as the same kind, and
// starts a new element otherwise.
func (p *Paragraph) extend(t Token) {
	c := p.registry.Classify(t)
	if !c.Lookahead.IsEmpty() {
		p.push(c.Lookahead)
	}

	last := p.tail()
	if c.Element.Kind() != last.Kind() {
		p.elements = append(p.elements, c.Element)
		p.feed(c.Element, c.Token)
		return
	}

	if promoted, ok := p.promote(last, c.Token); ok {
		p.elements[len(p.elements)-1] = promoted
		p.feed(promoted, c.Token)
		return
	}
	p.feed(last, c.Token)
}

// promote re-labels the paragraph's leading narration when t closes a variant
// whose opening delimiter came before the paragraph, as when a quote runs on
// from the previous paragraph.
func (p *Paragraph) promote(last Element, t Token) (Element, bool) {
	if len(p.elements) != 1 {
		return nil, false
	}
	n, ok := last.(*Narration)
	if !ok {
		return nil, false
	}
	kind, ok := p.registry.ClosingKind(t)
	if !ok {
		return nil, false
	}
	return p.registry.Promote(n, kind, p.ctx)
}

func (p *Paragraph) feed(el Element, t Token) {
	p.last = el.Feed(t)
	p.settle()
}

// settle moves the tokens carried by the last end state onto the stack. A
// leftover is handled before anything older; a split resets the state and is
// retried tail first.
func (p *Paragraph) settle() {
	switch p.last.Kind {
	case StateFinished, StateMaybeFinished:
		if rest, ok := p.last.Buffered(); ok {
			p.last.Rest = ""
			p.push(rest)
		}
	case StateNotFinishedToken:
		head, tail := p.last.Head, p.last.Tail
		p.last = NotFinished()
		p.push(head)
		p.push(tail)
	}
}

func (p *Paragraph) push(t Token) {
	if t.IsEmpty() {
		return
	}
	p.pending = append(p.pending, t)
}

func (p *Paragraph) pop() Token {
	t := p.pending[len(p.pending)-1]
	p.pending = p.pending[:len(p.pending)-1]
	return t
}

func (p *Paragraph) tail() Element {
	return p.elements[len(p.elements)-1]
}

// Elements returns the elements in the order they were written.
func (p *Paragraph) Elements() []Element {
	out := make([]Element, len(p.elements))
	copy(out, p.elements)
	return out
}

// Tokens returns the tokens pushed so far, unchanged. Pushing them into a
// fresh paragraph with the same registry rebuilds the same elements.
func (p *Paragraph) Tokens() []Token {
	out := make([]Token, len(p.raw))
	copy(out, p.raw)
	return out
}

// Len returns the number of elements.
func (p *Paragraph) Len() int {
	return len(p.elements)
}

// LastEndState returns the end state of the most recent feed.
func (p *Paragraph) LastEndState() EndState {
	return p.last
}

// Pending returns the number of tokens waiting for classification. It is zero
// whenever PushToken has returned.
func (p *Paragraph) Pending() int {
	return len(p.pending)
}

// Context returns the paragraph's parse context.
func (p *Paragraph) Context() *ParseContext {
	return p.ctx
}

// Text joins the text of every element with single spaces.
func (p *Paragraph) Text() string {
	parts := make([]string, 0, len(p.elements))
	for _, el := range p.elements {
		if text := ElementText(el); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
