package novel

// ParseContext carries what is known about the surrounding text while a
// paragraph is parsed. It is handed to promotion constructors so variants can
// resolve speakers; the built-in variants do not use it yet.
type ParseContext struct {
	Novel     NovelContext
	Chapter   ChapterContext
	Paragraph ParagraphContext
}

// NovelContext holds novel-wide knowledge.
type NovelContext struct {
	Title      string
	Characters []string
}

// ChapterContext holds chapter-wide knowledge.
type ChapterContext struct {
	Number int
	Title  string
}

// ParagraphContext identifies the paragraph being parsed.
type ParagraphContext struct {
	Index int
}
