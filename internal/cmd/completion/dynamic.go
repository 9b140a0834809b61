package completion

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/novel-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/novel-cli/internal/config"
	"github.com/open-cli-collective/novel-cli/internal/store"
	"github.com/open-cli-collective/novel-cli/internal/view"
	"github.com/open-cli-collective/novel-cli/pkg/chaptertext"
)

// ChapterIDs completes the first argument with stored chapter IDs, described
// by novel and number. Later arguments get no completion.
func ChapterIDs(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	cfg, err := config.LoadWithEnv(cmdutil.ConfigPath(cmd))
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	novelName, _ := cmd.Flags().GetString("novel")
	ids, err := chapterCandidates(cmd.Context(), cfg.ResolvedDBPath(), novelName)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func chapterCandidates(ctx context.Context, dbPath, novelName string) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()

	records, err := s.ListChapters(ctx, novelName)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		desc := fmt.Sprintf("%s #%d", rec.Novel, rec.Number)
		if rec.Title != "" {
			desc += " " + rec.Title
		}
		ids = append(ids, rec.ID+"\t"+desc)
	}
	return ids, nil
}

// InputFormats completes the --format flag of chapter file commands.
func InputFormats(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return chaptertext.ValidFormats(), cobra.ShellCompDirectiveNoFileComp
}

// OutputFormats completes the --output flag.
func OutputFormats(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return view.ValidFormats(), cobra.ShellCompDirectiveNoFileComp
}
