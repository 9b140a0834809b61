package novel

import (
	"fmt"
	"sync"
)

// Descriptor registers an element variant with a Registry.
type Descriptor struct {
	// Name is a human-readable variant name.
	Name string
	// Kind must match the Kind() of the elements the variant creates.
	Kind Kind
	// StartChars and EndChars list the characters that may open and close the
	// variant. They document the variant and are not used for dispatch.
	StartChars string
	EndChars   string

	// TryStart attempts to begin the variant from a raw token.
	TryStart func(Token) Match
	// FromNarration re-labels an existing narration as this variant.
	FromNarration func(*Narration, *ParseContext) Element
	// Closes reports whether a token closes an instance of the variant that
	// was opened before the paragraph began. Nil means never.
	Closes func(Token) bool
}

// Classification is the outcome of Registry.Classify.
type Classification struct {
	// Element is the newly created element.
	Element Element
	// Token is the token Element must be fed next.
	Token Token
	// Lookahead, when non-empty, must be classified after Token.
	Lookahead Token
}

// Registry is an ordered, immutable table of element variants. The first
// descriptor whose TryStart matches wins; narration is the implicit fallback
// and is never listed. A Registry is safe for concurrent use.
type Registry struct {
	descriptors []Descriptor
}

// NewRegistry builds a registry from descriptors, most specific first.
func NewRegistry(descriptors ...Descriptor) (*Registry, error) {
	seen := make(map[Kind]string, len(descriptors))
	for i, d := range descriptors {
		if d.Name == "" {
			return nil, fmt.Errorf("descriptor %d: name is required", i)
		}
		if d.Kind == "" {
			return nil, fmt.Errorf("descriptor %s: kind is required", d.Name)
		}
		if d.Kind == KindNarration {
			return nil, fmt.Errorf("descriptor %s: narration is the implicit fallback and cannot be registered", d.Name)
		}
		if d.TryStart == nil {
			return nil, fmt.Errorf("descriptor %s: TryStart is required", d.Name)
		}
		if d.FromNarration == nil {
			return nil, fmt.Errorf("descriptor %s: FromNarration is required", d.Name)
		}
		if other, ok := seen[d.Kind]; ok {
			return nil, fmt.Errorf("descriptor %s: kind %q already registered by %s", d.Name, d.Kind, other)
		}
		seen[d.Kind] = d.Name
	}

	r := &Registry{descriptors: make([]Descriptor, len(descriptors))}
	copy(r.descriptors, descriptors)
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on an invalid descriptor list.
func MustNewRegistry(descriptors ...Descriptor) *Registry {
	r, err := NewRegistry(descriptors...)
	if err != nil {
		panic(fmt.Sprintf("novel: %v", err))
	}
	return r
}

// BuiltinDescriptors returns the built-in variants in priority order.
func BuiltinDescriptors() []Descriptor {
	return []Descriptor{
		{
			Name:          "Dialog",
			Kind:          KindDialog,
			StartChars:    dialogOpen,
			EndChars:      dialogClose,
			TryStart:      TryStartDialog,
			FromNarration: DialogFromNarration,
			Closes:        DialogCloses,
		},
		{
			Name:          "Thought",
			Kind:          KindThought,
			StartChars:    thoughtOpen,
			EndChars:      thoughtClose,
			TryStart:      TryStartThought,
			FromNarration: ThoughtFromNarration,
		},
		{
			Name:          "Note",
			Kind:          KindNote,
			StartChars:    "[",
			EndChars:      "]",
			TryStart:      TryStartNote,
			FromNarration: NoteFromNarration,
		},
	}
}

// NarrationDescriptor describes the fallback variant. It is not part of any
// registry's descriptor list.
func NarrationDescriptor() Descriptor {
	return Descriptor{
		Name:          "Narration",
		Kind:          KindNarration,
		TryStart:      TryStartNarration,
		FromNarration: NarrationFromNarration,
	}
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return MustNewRegistry(BuiltinDescriptors()...)
})

// Default returns the process-wide registry of built-in variants. It is built
// on first use and never changes afterwards.
func Default() *Registry {
	return defaultRegistry()
}

// Descriptors returns a copy of the registered descriptors in priority order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Lookup returns the descriptor registered for kind.
func (r *Registry) Lookup(kind Kind) (Descriptor, bool) {
	if kind == KindNarration {
		return NarrationDescriptor(), true
	}
	for _, d := range r.descriptors {
		if d.Kind == kind {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Classify decides which variant t starts. It never fails: a token no
// variant claims becomes narration.
func (r *Registry) Classify(t Token) Classification {
	for _, d := range r.descriptors {
		m := d.TryStart(t)
		switch m.Outcome {
		case Matched:
			return Classification{Element: m.Element, Token: m.Token}
		case MatchedWithRest:
			el, tok := r.classifyHead(m.Token)
			return Classification{Element: el, Token: tok, Lookahead: m.Rest}
		default:
			t = m.Token
		}
	}
	n, tok := NewNarration(t)
	return Classification{Element: n, Token: tok}
}

// classifyHead runs the second and last pass over the head of a split token.
// A head that splits again is not split further.
func (r *Registry) classifyHead(head Token) (Element, Token) {
	for _, d := range r.descriptors {
		m := d.TryStart(head)
		switch m.Outcome {
		case Matched:
			return m.Element, m.Token
		case MatchedWithRest:
			return NewNarration(m.Token.Concat(m.Rest))
		default:
			head = m.Token
		}
	}
	return NewNarration(head)
}

// ClosingKind returns the first registered variant whose Closes accepts t.
func (r *Registry) ClosingKind(t Token) (Kind, bool) {
	for _, d := range r.descriptors {
		if d.Closes != nil && d.Closes(t) {
			return d.Kind, true
		}
	}
	return "", false
}

// Promote re-labels n as the variant registered for kind.
func (r *Registry) Promote(n *Narration, kind Kind, ctx *ParseContext) (Element, bool) {
	d, ok := r.Lookup(kind)
	if !ok {
		return nil, false
	}
	return d.FromNarration(n, ctx), true
}
