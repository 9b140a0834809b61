package view

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"

	"github.com/open-cli-collective/novel-cli/pkg/novel"
)

// Width of the TEXT column in table output.
const elementTextWidth = 72

// ElementView is the rendered form of one element.
type ElementView struct {
	Paragraph int      `json:"paragraph"`
	Kind      string   `json:"kind"`
	Text      string   `json:"text"`
	Sentences []string `json:"sentences,omitempty"`
	Speaker   string   `json:"speaker,omitempty"`
}

// ChapterView is the rendered form of a parsed chapter.
type ChapterView struct {
	Source   string         `json:"source,omitempty"`
	Number   int            `json:"number"`
	Title    string         `json:"title,omitempty"`
	Counts   map[string]int `json:"counts"`
	Elements []ElementView  `json:"elements"`
}

// NewChapterView flattens ch into element rows. With sentences set, every
// element also lists its sentences.
func NewChapterView(source string, ch *novel.Chapter, sentences bool) ChapterView {
	v := ChapterView{
		Source:   source,
		Number:   ch.Number,
		Title:    ch.Title,
		Counts:   make(map[string]int),
		Elements: []ElementView{},
	}
	for kind, n := range ch.Counts() {
		v.Counts[string(kind)] = n
	}

	for i, p := range ch.Paragraphs() {
		for _, el := range p.Elements() {
			ev := ElementView{
				Paragraph: i + 1,
				Kind:      string(el.Kind()),
				Text:      novel.ElementText(el),
			}
			switch e := el.(type) {
			case *novel.Dialog:
				ev.Speaker = e.From
			case *novel.Thought:
				ev.Speaker = e.From
			}
			if sentences {
				for _, s := range el.Sentences() {
					if s.Len() > 0 {
						ev.Sentences = append(ev.Sentences, s.Text())
					}
				}
			}
			v.Elements = append(v.Elements, ev)
		}
	}
	return v
}

// kindColors highlights the built-in element kinds in table output.
var kindColors = map[string]*color.Color{
	string(novel.KindNarration): color.New(color.FgWhite),
	string(novel.KindDialog):    color.New(color.FgCyan),
	string(novel.KindThought):   color.New(color.FgMagenta),
	string(novel.KindNote):      color.New(color.FgYellow),
}

// KindLabel returns kind colored for terminal output.
func KindLabel(kind string) string {
	if c, ok := kindColors[kind]; ok {
		return c.Sprint(kind)
	}
	return kind
}

// RenderChapter renders a parsed chapter.
func (r *Renderer) RenderChapter(v ChapterView) error {
	if r.format == FormatJSON {
		return r.RenderJSON(v)
	}

	if r.format == FormatTable {
		heading := fmt.Sprintf("Chapter %d", v.Number)
		if v.Title != "" {
			heading += ": " + v.Title
		}
		if v.Source != "" {
			heading += " (" + v.Source + ")"
		}
		color.New(color.Bold).Fprintln(r.writer, heading)
	}

	headers := []string{"PARA", "KIND", "TEXT"}
	rows := make([][]string, 0, len(v.Elements))
	for _, el := range v.Elements {
		text := el.Text
		kind := el.Kind
		if r.format == FormatTable {
			text = Truncate(text, elementTextWidth)
			kind = KindLabel(kind)
		}
		rows = append(rows, []string{strconv.Itoa(el.Paragraph), kind, text})
		if r.format == FormatTable {
			for _, s := range el.Sentences {
				rows = append(rows, []string{"", "", "  · " + s})
			}
		}
	}
	r.RenderTable(headers, rows)
	return nil
}
