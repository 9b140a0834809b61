// Package novel classifies a stream of whitespace-delimited tokens into typed
// narrative elements: narration, dialog, thought and any further variants
// registered with a Registry.
package novel

import (
	"strings"
	"unicode/utf8"
)

// Token is a single whitespace-delimited word with its punctuation attached.
// Producers never emit empty tokens.
type Token string

// NewToken creates a token from s.
func NewToken(s string) Token {
	return Token(s)
}

// Tokenize splits text on whitespace and drops empty tokens.
func Tokenize(text string) []Token {
	fields := strings.Fields(text)
	tokens := make([]Token, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		tokens = append(tokens, Token(f))
	}
	return tokens
}

func (t Token) String() string {
	return string(t)
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return len(t)
}

// IsEmpty reports whether the token has no characters.
func (t Token) IsEmpty() bool {
	return len(t) == 0
}

// StartsWith reports whether the first rune of t is r.
func (t Token) StartsWith(r rune) bool {
	first, size := utf8.DecodeRuneInString(string(t))
	return size > 0 && first == r
}

// EndsWith reports whether the last rune of t is r.
func (t Token) EndsWith(r rune) bool {
	last, size := utf8.DecodeLastRuneInString(string(t))
	return size > 0 && last == r
}

// StartsWithAny reports whether the first rune of t is one of set.
func (t Token) StartsWithAny(set string) bool {
	first, size := utf8.DecodeRuneInString(string(t))
	return size > 0 && strings.ContainsRune(set, first)
}

// EndsWithAny reports whether the last rune of t is one of set.
func (t Token) EndsWithAny(set string) bool {
	last, size := utf8.DecodeLastRuneInString(string(t))
	return size > 0 && strings.ContainsRune(set, last)
}

// SplitOff splits t at byte offset at. The head keeps everything before at,
// the tail everything from at on. Offsets outside the token are clamped.
func (t Token) SplitOff(at int) (Token, Token) {
	if at < 0 {
		at = 0
	}
	if at > len(t) {
		at = len(t)
	}
	return t[:at], t[at:]
}

// Concat appends other to t.
func (t Token) Concat(other Token) Token {
	return t + other
}

// TrimFirst drops the first rune.
func (t Token) TrimFirst() Token {
	_, size := utf8.DecodeRuneInString(string(t))
	return t[size:]
}

// TrimLast drops the last rune.
func (t Token) TrimLast() Token {
	_, size := utf8.DecodeLastRuneInString(string(t))
	return t[:len(t)-size]
}

// IndexAnyFrom returns the byte offset of the first rune from set at or after
// byte offset from, or -1.
func (t Token) IndexAnyFrom(set string, from int) int {
	if from < 0 {
		from = 0
	}
	if from >= len(t) {
		return -1
	}
	i := strings.IndexAny(string(t[from:]), set)
	if i < 0 {
		return -1
	}
	return from + i
}

// runeStart returns the byte offset where the n-th rune counted from the end
// begins. It returns 0 when t has fewer than n runes.
func (t Token) runeStart(n int) int {
	end := len(t)
	for i := 0; i < n; i++ {
		if end == 0 {
			return 0
		}
		_, size := utf8.DecodeLastRuneInString(string(t[:end]))
		end -= size
	}
	return end
}

// isSentenceEnd reports whether t closes a sentence.
func (t Token) isSentenceEnd() bool {
	return t.EndsWithAny(".!?…")
}
