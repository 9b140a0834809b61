package chapter

import (
	"context"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/novel-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/novel-cli/internal/cmd/completion"
	"github.com/open-cli-collective/novel-cli/internal/view"
)

type elementsOptions struct {
	novel      string
	number     int
	kind       string
	output     string
	explicit   bool
	noColor    bool
	configPath string
	stdout     io.Writer
}

// NewCmdElements creates the chapter elements command.
func NewCmdElements() *cobra.Command {
	opts := &elementsOptions{}

	cmd := &cobra.Command{
		Use:   "elements [chapter-id]",
		Short: "Show the stored element metadata of a chapter",
		Long: `Show the element metadata recorded when the chapter was imported:
position, kind, sentence and token counts, and speaker.`,
		Example: `  # Show the dialog of chapter 3
  nvl chapter elements --novel "The Road" --number 3 --kind dialog`,
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
			return runElements(cmd.Context(), id, opts)
		},
	}

	cmd.Flags().StringVar(&opts.novel, "novel", "", "novel of the chapter (default: from config)")
	cmd.Flags().IntVarP(&opts.number, "number", "n", 0, "chapter number within the novel")
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", "", "only show elements of this kind")

	return cmd
}

func runElements(ctx context.Context, id string, opts *elementsOptions) error {
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

	elements, err := s.ListElements(ctx, rec.ID)
	if err != nil {
		return err
	}

	if opts.kind != "" {
		filtered := elements[:0]
		for _, el := range elements {
			if string(el.Kind) == opts.kind {
				filtered = append(filtered, el)
			}
		}
		elements = filtered
	}

	renderer := view.NewRenderer(view.Format(output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}

	if view.Format(output) == view.FormatJSON {
		return renderer.RenderJSON(elements)
	}

	if len(elements) == 0 {
		renderer.RenderText("No elements found.")
		return nil
	}

	headers := []string{"PARA", "POS", "KIND", "SENTENCES", "TOKENS", "SPEAKER"}
	rows := make([][]string, 0, len(elements))
	for _, el := range elements {
		kind := string(el.Kind)
		if view.Format(output) == view.FormatTable {
			kind = view.KindLabel(kind)
		}
		speaker := el.Speaker
		if speaker == "" {
			speaker = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(el.Paragraph + 1),
			strconv.Itoa(el.Position + 1),
			kind,
			strconv.Itoa(el.Sentences),
			strconv.Itoa(el.Tokens),
			speaker,
		})
	}
	renderer.RenderTable(headers, rows)
	return nil
}
