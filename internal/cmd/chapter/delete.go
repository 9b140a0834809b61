package chapter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/novel-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/novel-cli/internal/cmd/completion"
	"github.com/open-cli-collective/novel-cli/internal/view"
)

type deleteOptions struct {
	force      bool
	output     string
	explicit   bool
	noColor    bool
	configPath string
	stdin      io.Reader
	stdout     io.Writer
}

// NewCmdDelete creates the chapter delete command.
func NewCmdDelete() *cobra.Command {
	opts := &deleteOptions{}

	cmd := &cobra.Command{
		Use:   "delete <chapter-id>",
		Short: "Delete a stored chapter",
		Long: `Delete a chapter and its element metadata from the chapter database.

By default, prompts for confirmation. Use --force to skip.`,
		Example: `  # Delete a chapter (with confirmation)
  nvl chapter delete 0b6f6f7e-6d1e-4f39-9d0e-6a1f0f5c2d11

  # Delete without confirmation
  nvl chapter delete 0b6f6f7e-6d1e-4f39-9d0e-6a1f0f5c2d11 --force`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.ChapterIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, opts.explicit = cmdutil.OutputFlag(cmd)
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.configPath = cmdutil.ConfigPath(cmd)
			return runDelete(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func runDelete(ctx context.Context, id string, opts *deleteOptions) error {
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

	stdout := opts.stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	s, err := cmdutil.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	rec, err := s.GetChapter(ctx, id)
	if err != nil {
		return err
	}

	if !opts.force {
		title := rec.Title
		if title == "" {
			title = "untitled"
		}
		fmt.Fprintf(stdout, "About to delete chapter %d of %s: %s (ID: %s)\n", rec.Number, rec.Novel, title, rec.ID)
		fmt.Fprint(stdout, "Are you sure? [y/N]: ")

		stdin := opts.stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		scanner := bufio.NewScanner(stdin)
		var confirm string
		if scanner.Scan() {
			confirm = strings.TrimSpace(scanner.Text())
		}
		if confirm != "y" && confirm != "Y" {
			fmt.Fprintln(stdout, "Deletion cancelled.")
			return nil
		}
	}

	if err := s.DeleteChapter(ctx, rec.ID); err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(output), opts.noColor)
	renderer.SetWriter(stdout)

	if view.Format(output) == view.FormatJSON {
		return renderer.RenderJSON(map[string]string{
			"id":     rec.ID,
			"status": "deleted",
		})
	}

	renderer.Success(fmt.Sprintf("Deleted chapter %d of %s (ID: %s)", rec.Number, rec.Novel, rec.ID))
	return nil
}
