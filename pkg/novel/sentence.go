package novel

import "strings"

// Sentence is an ordered run of tokens inside one element.
type Sentence struct {
	origin Token
	tokens []Token
}

// NewSentence starts a sentence at origin. The origin only records where the
// sentence began; its words arrive through Push.
func NewSentence(origin Token) *Sentence {
	return &Sentence{origin: origin}
}

// Push appends a token.
func (s *Sentence) Push(t Token) {
	s.tokens = append(s.tokens, t)
}

// Origin returns the token the sentence was started from.
func (s *Sentence) Origin() Token {
	return s.origin
}

// Tokens returns the sentence's tokens in order.
func (s *Sentence) Tokens() []Token {
	return s.tokens
}

// Len returns the number of tokens.
func (s *Sentence) Len() int {
	return len(s.tokens)
}

// Text joins the tokens with single spaces.
func (s *Sentence) Text() string {
	parts := make([]string, len(s.tokens))
	for i, t := range s.tokens {
		parts[i] = string(t)
	}
	return strings.Join(parts, " ")
}
