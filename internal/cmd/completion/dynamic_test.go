package completion

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/novel-cli/internal/config"
	"github.com/open-cli-collective/novel-cli/internal/store"
	"github.com/open-cli-collective/novel-cli/pkg/novel"
)

func TestChapterIDs(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "nvl.db")
	configPath := filepath.Join(dir, "config.yml")
	require.NoError(t, (&config.Config{DBPath: dbPath}).Save(configPath))
	t.Setenv("NVL_DB_PATH", "")

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	ctx := context.Background()
	first, err := s.SaveChapter(ctx, "Saga", novel.ParseChapter(1, "Arrival", []string{"A."}, nil), "a.txt")
	require.NoError(t, err)
	_, err = s.SaveChapter(ctx, "Epic", novel.ParseChapter(2, "", []string{"B."}, nil), "b.txt")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	cmd := &cobra.Command{Use: "view"}
	cmd.Flags().String("config", configPath, "")
	cmd.Flags().String("novel", "", "")

	ids, directive := ChapterIDs(cmd, nil, "")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	assert.Len(t, ids, 2)

	require.NoError(t, cmd.Flags().Set("novel", "Saga"))
	ids, _ = ChapterIDs(cmd, nil, "")
	assert.Equal(t, []string{first.ID + "\tSaga #1 Arrival"}, ids)

	ids, directive = ChapterIDs(cmd, []string{first.ID}, "")
	assert.Nil(t, ids)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}

func TestFormatCompletions(t *testing.T) {
	formats, _ := InputFormats(nil, nil, "")
	assert.Equal(t, []string{"auto", "plain", "markdown", "html"}, formats)

	outputs, _ := OutputFormats(nil, nil, "")
	assert.Equal(t, []string{"table", "json", "plain"}, outputs)
}
