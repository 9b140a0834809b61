package parse

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/novel-cli/internal/config"
	"github.com/open-cli-collective/novel-cli/internal/view"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newOptions(t *testing.T, output string) (*parseOptions, *bytes.Buffer) {
	t.Helper()
	var stdout bytes.Buffer
	return &parseOptions{
		number:     1,
		output:     output,
		explicit:   true,
		noColor:    true,
		configPath: filepath.Join(t.TempDir(), "missing.yml"),
		stdout:     &stdout,
	}, &stdout
}

func TestRunParse_JSONSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ch1.txt", "\"Hi,\" she said.\n\nHe thought 'odd' and left [TN: a pun]")

	opts, stdout := newOptions(t, "json")
	require.NoError(t, runParse(context.Background(), []string{path}, opts))

	var got view.ChapterView
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))

	assert.Equal(t, path, got.Source)
	assert.Equal(t, 1, got.Number)
	assert.Equal(t, map[string]int{"dialog": 1, "narration": 3, "thought": 1, "note": 1}, got.Counts)
	require.Len(t, got.Elements, 6)
	assert.Equal(t, view.ElementView{Paragraph: 1, Kind: "dialog", Text: "Hi,"}, got.Elements[0])
	assert.Equal(t, 2, got.Elements[5].Paragraph)
	assert.Equal(t, "note", got.Elements[5].Kind)
}

func TestRunParse_JSONMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.md", "# Start\n\nOnce.")
	second := writeFile(t, dir, "b.md", "# Next\n\n\"Twice\"")

	opts, stdout := newOptions(t, "json")
	opts.number = 7
	opts.workers = 2
	require.NoError(t, runParse(context.Background(), []string{first, second}, opts))

	var got []view.ChapterView
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 7, got[0].Number)
	assert.Equal(t, "Start", got[0].Title)
	assert.Equal(t, 8, got[1].Number)
	assert.Equal(t, "Next", got[1].Title)
	assert.Equal(t, "dialog", got[1].Elements[0].Kind)
}

func TestRunParse_Stdin(t *testing.T) {
	opts, stdout := newOptions(t, "plain")
	opts.stdin = strings.NewReader(`"Run," he said.`)

	require.NoError(t, runParse(context.Background(), []string{"-"}, opts))
	assert.Equal(t, "1\tdialog\tRun,\n1\tnarration\the said.\n", stdout.String())
}

func TestRunParse_TableWithSentences(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ch.txt", "He left. She stayed.")

	opts, stdout := newOptions(t, "table")
	opts.title = "Parting"
	opts.sentences = true
	require.NoError(t, runParse(context.Background(), []string{path}, opts))

	out := stdout.String()
	assert.Contains(t, out, "Chapter 1: Parting")
	assert.Contains(t, out, "PARA  KIND  TEXT")
	assert.Contains(t, out, "· He left.")
	assert.Contains(t, out, "· She stayed.")
}

func TestRunParse_ConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	require.NoError(t, (&config.Config{OutputFormat: "plain", InputFormat: "markdown"}).Save(configPath))
	path := writeFile(t, dir, "ch.txt", "# Heading\n\nBody.")

	opts, stdout := newOptions(t, "table")
	opts.explicit = false
	opts.configPath = configPath
	require.NoError(t, runParse(context.Background(), []string{path}, opts))

	assert.Equal(t, "1\tnarration\tBody.\n", stdout.String())
}

func TestRunParse_Errors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ch.txt", "text")

	t.Run("invalid input format", func(t *testing.T) {
		opts, _ := newOptions(t, "table")
		opts.format = "pdf"
		err := runParse(context.Background(), []string{path}, opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid input format")
	})

	t.Run("invalid output format", func(t *testing.T) {
		opts, _ := newOptions(t, "xml")
		err := runParse(context.Background(), []string{path}, opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid output format")
	})

	t.Run("missing file", func(t *testing.T) {
		opts, _ := newOptions(t, "table")
		err := runParse(context.Background(), []string{filepath.Join(dir, "nope.txt")}, opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read")
	})

	t.Run("invalid number", func(t *testing.T) {
		opts, _ := newOptions(t, "table")
		opts.number = 0
		err := runParse(context.Background(), []string{path}, opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "greater than zero")
	})
}

func TestNewCmdParse_Flags(t *testing.T) {
	cmd := NewCmdParse()
	for _, name := range []string{"format", "number", "title", "sentences", "workers"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Error(t, cmd.Args(cmd, nil))
}
