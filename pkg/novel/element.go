package novel

import (
	"fmt"
	"strings"
)

// Kind identifies an element variant. Two elements can merge only when their
// kinds are equal.
type Kind string

const (
	KindNarration Kind = "narration"
	KindDialog    Kind = "dialog"
	KindThought   Kind = "thought"
	KindNote      Kind = "note"
)

// Element is a classified span of text.
type Element interface {
	// Kind reports the element variant.
	Kind() Kind

	// Feed advances an open element with one more token. Tokens are never empty.
	Feed(t Token) EndState

	// Sentences returns the element's sentences. A constructed element always
	// owns at least one.
	Sentences() []*Sentence

	// IsStart and IsEnd report whether the element is a self-contained boundary.
	IsStart() bool
	IsEnd() bool
}

// ElementText joins every sentence of el with single spaces.
func ElementText(el Element) string {
	var parts []string
	for _, s := range el.Sentences() {
		if s.Len() == 0 {
			continue
		}
		parts = append(parts, s.Text())
	}
	return strings.Join(parts, " ")
}

// TokenCount returns the number of tokens across all sentences of el.
func TokenCount(el Element) int {
	n := 0
	for _, s := range el.Sentences() {
		n += s.Len()
	}
	return n
}

// EndStateKind enumerates the outcomes of feeding a token.
type EndStateKind int

const (
	// StateNotFinished: the element stays open.
	StateNotFinished EndStateKind = iota
	// StateFinished: the element is closed for good.
	StateFinished
	// StateMaybeFinished: the element is closed for now but a token of the
	// same kind continues it instead of starting a new element.
	StateMaybeFinished
	// StateNotFinishedToken: the fed token had to be split; both halves are
	// retried from scratch.
	StateNotFinishedToken
)

func (k EndStateKind) String() string {
	switch k {
	case StateNotFinished:
		return "NotFinished"
	case StateFinished:
		return "Finished"
	case StateMaybeFinished:
		return "MaybeFinished"
	case StateNotFinishedToken:
		return "NotFinishedToken"
	default:
		return fmt.Sprintf("EndStateKind(%d)", int(k))
	}
}

// EndState is returned by every Feed and decides what happens to the next
// token. It is never stored past the next token.
type EndState struct {
	Kind EndStateKind
	Rest Token // Finished, MaybeFinished: leftover for the next element
	Head Token // NotFinishedToken
	Tail Token // NotFinishedToken
}

// Finished closes the element. A non-empty rest is classified next.
func Finished(rest Token) EndState {
	return EndState{Kind: StateFinished, Rest: rest}
}

// MaybeFinished closes the element unless the next token has the same kind.
func MaybeFinished(rest Token) EndState {
	return EndState{Kind: StateMaybeFinished, Rest: rest}
}

// NotFinishedToken asks the caller to retry head and tail separately.
func NotFinishedToken(head, tail Token) EndState {
	return EndState{Kind: StateNotFinishedToken, Head: head, Tail: tail}
}

// NotFinished keeps the element open.
func NotFinished() EndState {
	return EndState{Kind: StateNotFinished}
}

// Buffered returns the leftover token of a Finished or MaybeFinished state.
func (s EndState) Buffered() (Token, bool) {
	switch s.Kind {
	case StateFinished, StateMaybeFinished:
		return s.Rest, !s.Rest.IsEmpty()
	}
	return "", false
}

func (s EndState) String() string {
	switch s.Kind {
	case StateFinished, StateMaybeFinished:
		if s.Rest.IsEmpty() {
			return s.Kind.String() + "(None)"
		}
		return fmt.Sprintf("%s(%q)", s.Kind, s.Rest)
	case StateNotFinishedToken:
		return fmt.Sprintf("%s(%q, %q)", s.Kind, s.Head, s.Tail)
	default:
		return s.Kind.String()
	}
}

// MatchOutcome is the result class of a TryStart call.
type MatchOutcome int

const (
	// NotMatched: offer the unchanged token to the next variant.
	NotMatched MatchOutcome = iota
	// Matched: a new element was created and must be fed Token.
	Matched
	// MatchedWithRest: Token belongs to this variant, Rest to whatever follows.
	MatchedWithRest
)

// Match is returned by a variant's TryStart.
type Match struct {
	Outcome MatchOutcome
	Element Element
	Token   Token
	Rest    Token
}

// MatchElement reports a match creating el, to be fed t right away.
func MatchElement(el Element, t Token) Match {
	return Match{Outcome: Matched, Element: el, Token: t}
}

// MatchWithRest reports that head starts an element and tail follows it.
func MatchWithRest(head, tail Token) Match {
	return Match{Outcome: MatchedWithRest, Token: head, Rest: tail}
}

// NoMatch hands t back unchanged.
func NoMatch(t Token) Match {
	return Match{Outcome: NotMatched, Token: t}
}

// sentenceList is the sentence storage shared by the built-in variants.
type sentenceList struct {
	sentences []*Sentence
	breakNext bool
}

func newSentenceList(origin Token) sentenceList {
	return sentenceList{sentences: []*Sentence{NewSentence(origin)}}
}

// push appends t to the last sentence, starting a new one after a token that
// ended the previous sentence.
func (l *sentenceList) push(kind Kind, t Token) {
	if len(l.sentences) == 0 {
		invariantViolation(kind)
		return
	}
	if l.breakNext {
		l.sentences = append(l.sentences, NewSentence(t))
		l.breakNext = false
	}
	l.sentences[len(l.sentences)-1].Push(t)
	l.breakNext = t.isSentenceEnd()
}
