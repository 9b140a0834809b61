package chapter

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/novel-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/novel-cli/internal/cmd/completion"
	"github.com/open-cli-collective/novel-cli/internal/logging"
	"github.com/open-cli-collective/novel-cli/internal/store"
	"github.com/open-cli-collective/novel-cli/internal/view"
	"github.com/open-cli-collective/novel-cli/pkg/chaptertext"
	"github.com/open-cli-collective/novel-cli/pkg/novel"
)

type importOptions struct {
	novel      string
	number     int
	title      string
	format     string
	workers    int
	output     string
	explicit   bool
	noColor    bool
	configPath string
	stdin      io.Reader
	stdout     io.Writer
}

// NewCmdImport creates the chapter import command.
func NewCmdImport() *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Parse chapter files and store them",
		Long: `Parse chapter files and store them in the chapter database.

Each file becomes one chapter, numbered consecutively from --number.
Importing a chapter number that already exists for the novel replaces
its content and keeps its ID.`,
		Example: `  # Import the first chapter of a novel
  nvl chapter import --novel "The Road" chapter-01.txt

  # Import a volume starting at chapter 12
  nvl chapter import --novel "The Road" --number 12 vol2/*.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, opts.explicit = cmdutil.OutputFlag(cmd)
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.configPath = cmdutil.ConfigPath(cmd)
			return runImport(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.novel, "novel", "", "novel the chapters belong to (default: from config)")
	cmd.Flags().IntVarP(&opts.number, "number", "n", 1, "chapter number of the first file")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "chapter title (default: first heading)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "input format: auto, plain, markdown, html")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "files parsed in parallel (default: CPU count)")

	_ = cmd.RegisterFlagCompletionFunc("format", completion.InputFormats)

	return cmd
}

func runImport(ctx context.Context, args []string, opts *importOptions) error {
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
	if novelName == "" {
		return fmt.Errorf("novel is required: use --novel flag or set default_novel in config")
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

	s, err := cmdutil.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	records := make([]store.ChapterRecord, 0, len(chapters))
	for i, ch := range chapters {
		rec, err := s.SaveChapter(ctx, novelName, ch, sources[i].Name)
		if err != nil {
			return fmt.Errorf("failed to store %s: %w", sources[i].Name, err)
		}
		logging.Debug("stored chapter", "id", rec.ID, "novel", rec.Novel, "number", rec.Number)
		records = append(records, rec)
	}

	renderer := view.NewRenderer(view.Format(output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}

	if view.Format(output) == view.FormatJSON {
		return renderer.RenderJSON(records)
	}

	for _, rec := range records {
		renderer.Success(fmt.Sprintf("Imported chapter %d of %s (%d elements)", rec.Number, rec.Novel, rec.Elements))
		renderer.RenderKeyValue("ID", rec.ID)
	}
	return nil
}

func chapterRows(records []store.ChapterRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.ID,
			rec.Novel,
			strconv.Itoa(rec.Number),
			view.Truncate(rec.Title, 40),
			strconv.Itoa(rec.Paragraphs),
			strconv.Itoa(rec.Elements),
		})
	}
	return rows
}
