package chapter

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/novel-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/novel-cli/internal/view"
)

type listOptions struct {
	novel      string
	output     string
	explicit   bool
	noColor    bool
	configPath string
	stdout     io.Writer
}

// NewCmdList creates the chapter list command.
func NewCmdList() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored chapters",
		Long:    `List chapters in the chapter database, ordered by novel and chapter number.`,
		Example: `  # List all chapters
  nvl chapter list

  # List the chapters of one novel
  nvl chapter list --novel "The Road"

  # Output as JSON
  nvl chapter list -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.output, opts.explicit = cmdutil.OutputFlag(cmd)
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.configPath = cmdutil.ConfigPath(cmd)
			return runList(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.novel, "novel", "", "only list chapters of this novel")

	return cmd
}

func runList(ctx context.Context, opts *listOptions) error {
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

	s, err := cmdutil.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	records, err := s.ListChapters(ctx, opts.novel)
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}

	if view.Format(output) == view.FormatJSON {
		return renderer.RenderJSON(records)
	}

	if len(records) == 0 {
		renderer.RenderText("No chapters found.")
		return nil
	}

	headers := []string{"ID", "NOVEL", "NUMBER", "TITLE", "PARAGRAPHS", "ELEMENTS"}
	renderer.RenderTable(headers, chapterRows(records))
	return nil
}
