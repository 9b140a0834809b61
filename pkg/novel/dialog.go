package novel

const (
	dialogOpen  = "\"“"
	dialogClose = "\"”"
)

// Dialog is spoken text between double quotes.
type Dialog struct {
	// To is the character the dialog is addressed to.
	To string
	// From is the character speaking.
	From string

	opened bool
	list   sentenceList
}

// TryStartDialog matches a token opening with a double quote. When the same
// token also closes the quote and carries more text, the quoted head is split
// from the rest.
func TryStartDialog(t Token) Match {
	if !t.StartsWithAny(dialogOpen) {
		return NoMatch(t)
	}
	start := t.Len() - len(t.TrimFirst())
	if at := t.IndexAnyFrom(dialogClose, start); at >= 0 {
		end := at + len(t[at:]) - len(t[at:].TrimFirst())
		if end < t.Len() {
			head, tail := t.SplitOff(end)
			return MatchWithRest(head, tail)
		}
	}
	return MatchElement(&Dialog{list: newSentenceList(t)}, t)
}

// DialogFromNarration re-labels n as a dialog whose opening quote came before
// the narration started, so the dialog is already open.
func DialogFromNarration(n *Narration, _ *ParseContext) Element {
	return &Dialog{opened: true, list: n.list}
}

// DialogCloses reports whether t closes a dialog without opening one itself.
func DialogCloses(t Token) bool {
	return t.EndsWithAny(dialogClose) && !t.StartsWithAny(dialogOpen)
}

func (d *Dialog) Kind() Kind { return KindDialog }

// Opened reports whether the opening quote has been consumed and the closing
// one not yet seen.
func (d *Dialog) Opened() bool { return d.opened }

func (d *Dialog) Feed(t Token) EndState {
	if !d.opened && t.StartsWithAny(dialogOpen) {
		d.opened = true
		rest := t.TrimFirst()
		if rest.IsEmpty() {
			return NotFinished()
		}
		return d.Feed(rest)
	}

	if t.EndsWithAny(dialogClose) {
		if d.opened {
			d.opened = false
			if body := t.TrimLast(); !body.IsEmpty() {
				d.list.push(KindDialog, body)
			}
			return Finished("")
		}

		// A closing quote without an open one: the last two runes start a new
		// boundary and both halves are retried.
		if at := t.runeStart(2); at > 0 {
			head, tail := t.SplitOff(at)
			return NotFinishedToken(head, tail)
		}
		if body := t.TrimLast(); !body.IsEmpty() {
			d.list.push(KindDialog, body)
		}
		return Finished("")
	}

	if t.StartsWithAny(dialogOpen) {
		// The quote closes this dialog; the rest begins the next element.
		return Finished(t.TrimFirst())
	}

	d.list.push(KindDialog, t)
	return NotFinished()
}

func (d *Dialog) Sentences() []*Sentence { return d.list.sentences }

func (d *Dialog) IsStart() bool { return true }

func (d *Dialog) IsEnd() bool { return true }
