package novel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{"empty", "", []Token{}},
		{"whitespace only", " \t\n ", []Token{}},
		{"single word", "hello", []Token{"hello"}},
		{"punctuation stays attached", `"Hi," he said.`, []Token{`"Hi,"`, "he", "said."}},
		{"mixed whitespace", "a\tb\n\nc  d", []Token{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestToken_StartsEndsWith(t *testing.T) {
	tok := NewToken(`"hello”`)
	assert.True(t, tok.StartsWith('"'))
	assert.False(t, tok.StartsWith('h'))
	assert.True(t, tok.EndsWith('”'))
	assert.False(t, tok.EndsWith('"'))
	assert.True(t, tok.StartsWithAny(dialogOpen))
	assert.True(t, tok.EndsWithAny(dialogClose))

	var empty Token
	assert.False(t, empty.StartsWith('"'))
	assert.False(t, empty.EndsWith('"'))
	assert.True(t, empty.IsEmpty())
}

func TestToken_SplitOff(t *testing.T) {
	tests := []struct {
		name     string
		tok      Token
		at       int
		wantHead Token
		wantTail Token
	}{
		{"middle", "abcdef", 2, "ab", "cdef"},
		{"start", "abc", 0, "", "abc"},
		{"end", "abc", 3, "abc", ""},
		{"negative clamps", "abc", -4, "", "abc"},
		{"past end clamps", "abc", 10, "abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head, tail := tt.tok.SplitOff(tt.at)
			assert.Equal(t, tt.wantHead, head)
			assert.Equal(t, tt.wantTail, tail)
			assert.Equal(t, tt.tok, head.Concat(tail))
		})
	}
}

func TestToken_TrimFirstLast(t *testing.T) {
	assert.Equal(t, Token("hello"), Token(`“hello`).TrimFirst())
	assert.Equal(t, Token("hello"), Token(`hello”`).TrimLast())
	assert.Equal(t, Token(""), Token(`"`).TrimFirst())
	assert.Equal(t, Token(""), Token("").TrimLast())
}

func TestToken_IndexAnyFrom(t *testing.T) {
	tok := Token(`"Hi!"he`)
	assert.Equal(t, 0, tok.IndexAnyFrom(`"`, 0))
	assert.Equal(t, 4, tok.IndexAnyFrom(`"`, 1))
	assert.Equal(t, -1, tok.IndexAnyFrom(`"`, 5))
	assert.Equal(t, -1, tok.IndexAnyFrom(`"`, 100))
}

func TestToken_RuneStart(t *testing.T) {
	assert.Equal(t, 3, Token(`abc""`).runeStart(2))
	assert.Equal(t, 2, Token(`éa"`).runeStart(2))
	assert.Equal(t, 0, Token(`a"`).runeStart(2))
	assert.Equal(t, 0, Token(`"`).runeStart(2))
}

func TestSentence(t *testing.T) {
	s := NewSentence("origin")
	assert.Equal(t, Token("origin"), s.Origin())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "", s.Text())

	s.Push("hello")
	s.Push("world")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []Token{"hello", "world"}, s.Tokens())
	assert.Equal(t, "hello world", s.Text())
}
