package novel

const (
	thoughtOpen  = "'‘"
	thoughtClose = "'’"
)

// Thought is internal monologue between single quotes.
type Thought struct {
	// From is the character thinking.
	From string

	list sentenceList
}

// TryStartThought matches a token opening with a single quote. A lone quote
// is left to narration. The new thought is fed the token without its quote.
func TryStartThought(t Token) Match {
	if !t.StartsWithAny(thoughtOpen) {
		return NoMatch(t)
	}
	rest := t.TrimFirst()
	if rest.IsEmpty() {
		return NoMatch(t)
	}
	return MatchElement(&Thought{list: newSentenceList(t)}, rest)
}

// ThoughtFromNarration re-labels n as a thought.
func ThoughtFromNarration(n *Narration, _ *ParseContext) Element {
	return &Thought{list: n.list}
}

func (th *Thought) Kind() Kind { return KindThought }

func (th *Thought) Feed(t Token) EndState {
	if t.EndsWithAny(thoughtClose) {
		if body := t.TrimLast(); !body.IsEmpty() {
			th.list.push(KindThought, body)
		}
		return Finished("")
	}
	if t.StartsWithAny(thoughtOpen) {
		return Finished(t.TrimFirst())
	}
	th.list.push(KindThought, t)
	return NotFinished()
}

func (th *Thought) Sentences() []*Sentence { return th.list.sentences }

func (th *Thought) IsStart() bool { return true }

func (th *Thought) IsEnd() bool { return true }
