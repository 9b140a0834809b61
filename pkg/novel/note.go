package novel

import "strings"

// Note is a bracketed aside such as a translator's or author's note.
type Note struct {
	opened bool
	list   sentenceList
}

// TryStartNote matches a token opening with '['.
func TryStartNote(t Token) Match {
	if !t.StartsWith('[') {
		return NoMatch(t)
	}
	return MatchElement(&Note{list: newSentenceList(t)}, t)
}

// NoteFromNarration re-labels n as an open note.
func NoteFromNarration(n *Narration, _ *ParseContext) Element {
	return &Note{opened: true, list: n.list}
}

func (n *Note) Kind() Kind { return KindNote }

func (n *Note) Feed(t Token) EndState {
	if !n.opened && t.StartsWith('[') {
		n.opened = true
		rest := t.TrimFirst()
		if rest.IsEmpty() {
			return NotFinished()
		}
		return n.Feed(rest)
	}
	if at := strings.IndexRune(string(t), ']'); at >= 0 {
		n.opened = false
		body, after := t.SplitOff(at)
		if !body.IsEmpty() {
			n.list.push(KindNote, body)
		}
		return Finished(after.TrimFirst())
	}
	n.list.push(KindNote, t)
	return NotFinished()
}

func (n *Note) Sentences() []*Sentence { return n.list.sentences }

func (n *Note) IsStart() bool { return true }

func (n *Note) IsEnd() bool { return true }
