// Package chaptertext turns chapter files into the paragraph strings the
// novel classifier consumes.
package chaptertext

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies how a chapter file is written.
type Format string

const (
	FormatAuto     Format = "auto"
	FormatPlain    Format = "plain"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ValidFormats returns the accepted format names.
func ValidFormats() []string {
	return []string{string(FormatAuto), string(FormatPlain), string(FormatMarkdown), string(FormatHTML)}
}

// ParseFormat parses a format name. An empty name selects FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatPlain, "txt", "text":
		return FormatPlain, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatHTML, "htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("invalid input format %q: must be one of %s", s, strings.Join(ValidFormats(), ", "))
	}
}

// DetectFormat picks a format from the file extension of name, falling back to
// sniffing data. It never returns FormatAuto.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".html", ".htm", ".xhtml":
		return FormatHTML
	case ".txt", ".text":
		return FormatPlain
	}

	head := bytes.ToLower(bytes.TrimSpace(data))
	if len(head) > 512 {
		head = head[:512]
	}
	for _, prefix := range []string{"<!doctype html", "<html", "<body", "<p", "<h1", "<div", "<article"} {
		if bytes.HasPrefix(head, []byte(prefix)) {
			return FormatHTML
		}
	}
	if bytes.HasPrefix(head, []byte("# ")) || bytes.HasPrefix(head, []byte("## ")) {
		return FormatMarkdown
	}
	return FormatPlain
}
