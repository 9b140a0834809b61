// Package parse provides the parse command.
package parse

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/novel-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/novel-cli/internal/cmd/completion"
	"github.com/open-cli-collective/novel-cli/internal/view"
	"github.com/open-cli-collective/novel-cli/pkg/chaptertext"
	"github.com/open-cli-collective/novel-cli/pkg/novel"
)

type parseOptions struct {
	format     string
	number     int
	title      string
	sentences  bool
	workers    int
	output     string
	explicit   bool
	noColor    bool
	configPath string
	stdin      io.Reader
	stdout     io.Writer
}

// NewCmdParse creates the parse command.
func NewCmdParse() *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Classify the elements of chapter files",
		Long: `Split chapter text into paragraphs and classify every run of words as
narration, dialog, thought, or translator note.

Each file becomes one chapter, numbered consecutively from --number.
Use "-" to read a chapter from stdin. Files are parsed in parallel.`,
		Example: `  # Classify a plain text chapter
  nvl parse chapter-01.txt

  # Show sentences and output JSON
  nvl parse chapter-01.md --sentences -o json

  # Parse a whole volume, starting at chapter 10
  nvl parse --number 10 vol2/*.html

  # Read from stdin
  cat chapter.txt | nvl parse -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, opts.explicit = cmdutil.OutputFlag(cmd)
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.configPath = cmdutil.ConfigPath(cmd)
			return runParse(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "input format: auto, plain, markdown, html")
	cmd.Flags().IntVarP(&opts.number, "number", "n", 1, "chapter number of the first file")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "chapter title (default: first heading)")
	cmd.Flags().BoolVar(&opts.sentences, "sentences", false, "list the sentences of every element")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "files parsed in parallel (default: CPU count)")

	_ = cmd.RegisterFlagCompletionFunc("format", completion.InputFormats)

	return cmd
}

func runParse(ctx context.Context, args []string, opts *parseOptions) error {
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

	formatName := opts.format
	if formatName == "" {
		formatName = cfg.InputFormat
	}
	format, err := chaptertext.ParseFormat(formatName)
	if err != nil {
		return err
	}

	sources, err := cmdutil.ReadSources(args, opts.stdin)
	if err != nil {
		return err
	}

	chapters, err := cmdutil.ParseSources(ctx, sources, cmdutil.ParseOptions{
		Format:      format,
		FirstNumber: opts.number,
		Title:       opts.title,
		Workers:     cmdutil.ResolveWorkers(opts.workers, cfg),
		Registry:    novel.Default(),
	})
	if err != nil {
		return err
	}

	views := make([]view.ChapterView, len(chapters))
	for i, ch := range chapters {
		views[i] = view.NewChapterView(sources[i].Name, ch, opts.sentences)
	}

	renderer := view.NewRenderer(view.Format(output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}

	if view.Format(output) == view.FormatJSON && len(views) > 1 {
		return renderer.RenderJSON(views)
	}

	for i, v := range views {
		if i > 0 && view.Format(output) == view.FormatTable {
			renderer.RenderText("")
		}
		if err := renderer.RenderChapter(v); err != nil {
			return fmt.Errorf("failed to render %s: %w", v.Source, err)
		}
	}
	return nil
}
