package novel

// Narration is plain narrative text and the fallback for every token no other
// variant claims.
type Narration struct {
	list sentenceList
}

// NewNarration wraps t as a narration. The returned token is the one to feed.
func NewNarration(t Token) (*Narration, Token) {
	return &Narration{list: newSentenceList(t)}, t
}

// TryStartNarration always matches.
func TryStartNarration(t Token) Match {
	n, tok := NewNarration(t)
	return MatchElement(n, tok)
}

// NarrationFromNarration returns n unchanged.
func NarrationFromNarration(n *Narration, _ *ParseContext) Element {
	return n
}

func (n *Narration) Kind() Kind { return KindNarration }

// Feed appends t. Narration never closes on its own; it ends when a token of
// another kind arrives.
func (n *Narration) Feed(t Token) EndState {
	n.list.push(KindNarration, t)
	return MaybeFinished("")
}

func (n *Narration) Sentences() []*Sentence { return n.list.sentences }

func (n *Narration) IsStart() bool { return true }

func (n *Narration) IsEnd() bool { return true }
