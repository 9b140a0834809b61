package cmdutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/novel-cli/internal/config"
	"github.com/open-cli-collective/novel-cli/pkg/chaptertext"
	"github.com/open-cli-collective/novel-cli/pkg/novel"
)

func newFlagCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("output", "table", "")
	return cmd
}

func TestConfigPath(t *testing.T) {
	cmd := newFlagCmd()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	assert.Equal(t, config.DefaultConfigPath(), ConfigPath(cmd))

	require.NoError(t, cmd.Flags().Set("config", "/tmp/custom.yml"))
	assert.Equal(t, "/tmp/custom.yml", ConfigPath(cmd))
}

func TestOutputFlag(t *testing.T) {
	cmd := newFlagCmd()
	output, explicit := OutputFlag(cmd)
	assert.Equal(t, "table", output)
	assert.False(t, explicit)

	require.NoError(t, cmd.Flags().Set("output", "json"))
	output, explicit = OutputFlag(cmd)
	assert.Equal(t, "json", output)
	assert.True(t, explicit)
}

func TestResolveOutput(t *testing.T) {
	cfg := &config.Config{OutputFormat: "plain"}
	assert.Equal(t, "plain", ResolveOutput("table", false, cfg))
	assert.Equal(t, "json", ResolveOutput("json", true, cfg))
	assert.Equal(t, "table", ResolveOutput("table", false, &config.Config{}))
	assert.Equal(t, "table", ResolveOutput("table", false, nil))
}

func TestResolveWorkers(t *testing.T) {
	assert.Equal(t, 3, ResolveWorkers(3, &config.Config{Workers: 5}))
	assert.Equal(t, 5, ResolveWorkers(0, &config.Config{Workers: 5}))
	assert.Positive(t, ResolveWorkers(0, nil))
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{OutputFormat: "xml"}).Save(path))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.Contains(t, err.Error(), "nvl init")
}

func TestReadSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ch1.txt")
	require.NoError(t, os.WriteFile(path, []byte("file text"), 0600))

	sources, err := ReadSources([]string{path, "-"}, strings.NewReader("stdin text"))
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "file text", string(sources[0].Data))
	assert.Equal(t, "-", sources[1].Name)
	assert.Equal(t, "stdin text", string(sources[1].Data))

	_, err = ReadSources([]string{"-", "-"}, strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin can only be read once")

	_, err = ReadSources([]string{filepath.Join(dir, "missing.txt")}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestParseSources(t *testing.T) {
	sources := []Source{
		{Name: "one.md", Data: []byte("# Arrival\n\n\"Hi,\" she said.")},
		{Name: "two.txt", Data: []byte("Plain narration.\n\n'Odd' he thought.")},
		{Name: "three.html", Data: []byte("<h1>Night</h1><p>[TN: pun]</p>")},
	}

	chapters, err := ParseSources(context.Background(), sources, ParseOptions{
		Format:      chaptertext.FormatAuto,
		FirstNumber: 4,
		Workers:     2,
	})
	require.NoError(t, err)
	require.Len(t, chapters, 3)

	assert.Equal(t, 4, chapters[0].Number)
	assert.Equal(t, "Arrival", chapters[0].Title)
	assert.Equal(t, map[novel.Kind]int{novel.KindDialog: 1, novel.KindNarration: 1}, chapters[0].Counts())

	assert.Equal(t, 5, chapters[1].Number)
	assert.Empty(t, chapters[1].Title)
	assert.Len(t, chapters[1].Paragraphs(), 2)

	assert.Equal(t, 6, chapters[2].Number)
	assert.Equal(t, "Night", chapters[2].Title)
	assert.Equal(t, map[novel.Kind]int{novel.KindNote: 1}, chapters[2].Counts())
}

func TestParseSources_TitleOverride(t *testing.T) {
	chapters, err := ParseSources(context.Background(),
		[]Source{{Name: "a.md", Data: []byte("# Heading\n\nText.")}},
		ParseOptions{FirstNumber: 1, Title: "Override"},
	)
	require.NoError(t, err)
	assert.Equal(t, "Override", chapters[0].Title)
}

func TestParseSources_InvalidNumber(t *testing.T) {
	_, err := ParseSources(context.Background(), nil, ParseOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chapter number must be greater than zero")
}

func TestParseSources_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseSources(ctx, []Source{{Name: "a.txt", Data: []byte("x")}}, ParseOptions{FirstNumber: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
