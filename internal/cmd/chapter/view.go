package chapter

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/novel-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/novel-cli/internal/cmd/completion"
	"github.com/open-cli-collective/novel-cli/internal/store"
	"github.com/open-cli-collective/novel-cli/internal/view"
	"github.com/open-cli-collective/novel-cli/pkg/novel"
)

type viewOptions struct {
	novel      string
	number     int
	sentences  bool
	output     string
	explicit   bool
	noColor    bool
	configPath string
	stdout     io.Writer
}

// NewCmdView creates the chapter view command.
func NewCmdView() *cobra.Command {
	opts := &viewOptions{}

	cmd := &cobra.Command{
		Use:   "view [chapter-id]",
		Short: "Show the elements of a stored chapter",
		Long: `Classify a stored chapter again and show its elements.

Select the chapter by ID, or by --novel and --number.`,
		Example: `  # View by ID
  nvl chapter view 0b6f6f7e-6d1e-4f39-9d0e-6a1f0f5c2d11

  # View by novel and number
  nvl chapter view --novel "The Road" --number 3 --sentences`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completion.ChapterIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, opts.explicit = cmdutil.OutputFlag(cmd)
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.configPath = cmdutil.ConfigPath(cmd)
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			return runView(cmd.Context(), id, opts)
		},
	}

	cmd.Flags().StringVar(&opts.novel, "novel", "", "novel of the chapter (default: from config)")
	cmd.Flags().IntVarP(&opts.number, "number", "n", 0, "chapter number within the novel")
	cmd.Flags().BoolVar(&opts.sentences, "sentences", false, "list the sentences of every element")

	return cmd
}

// resolveChapter finds a chapter by ID, or by novel and number when id is
// empty.
func resolveChapter(ctx context.Context, s *store.Store, id, novelName string, number int) (store.ChapterRecord, error) {
	if id != "" {
		return s.GetChapter(ctx, id)
	}
	if number <= 0 {
		return store.ChapterRecord{}, fmt.Errorf("chapter ID or --number is required")
	}
	if novelName == "" {
		return store.ChapterRecord{}, fmt.Errorf("novel is required: use --novel flag or set default_novel in config")
	}
	return s.FindChapter(ctx, novelName, number)
}

func runView(ctx context.Context, id string, opts *viewOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := cmdutil.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}

	output := cmdutil.ResolveOutput(opts.output, opts.explicit, cfg)
	if err := view.ValidateFormat(output); err != nil {
		return err
	}

	novelName := opts.novel
	if novelName == "" {
		novelName = cfg.DefaultNovel
	}

	s, err := cmdutil.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	rec, err := resolveChapter(ctx, s, id, novelName, opts.number)
	if err != nil {
		return err
	}

	ch, err := s.LoadChapter(ctx, rec.ID, novel.Default())
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}
	return renderer.RenderChapter(view.NewChapterView(rec.Source, ch, opts.sentences))
}
