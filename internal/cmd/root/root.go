// Package root provides the root command for the nvl CLI.
package root

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/novel-cli/internal/cmd/chapter"
	"github.com/open-cli-collective/novel-cli/internal/cmd/completion"
	"github.com/open-cli-collective/novel-cli/internal/cmd/configcmd"
	"github.com/open-cli-collective/novel-cli/internal/cmd/elements"
	initcmd "github.com/open-cli-collective/novel-cli/internal/cmd/init"
	"github.com/open-cli-collective/novel-cli/internal/cmd/parse"
	"github.com/open-cli-collective/novel-cli/internal/logging"
	"github.com/open-cli-collective/novel-cli/internal/version"
	"github.com/open-cli-collective/novel-cli/internal/view"
)

// NewCmdRoot creates the root command for nvl.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nvl",
		Short: "Classify the narrative elements of web novel chapters",
		Long: `nvl splits web novel chapters into paragraphs and classifies every run
of words as narration, dialog, thought, or translator note.

Chapters can be parsed on the fly or imported into a local chapter
database for later inspection.

Get started by running: nvl init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logging.InitLogger(os.Stderr, logging.LevelDebug, logging.FormatText)
			}

			output, _ := cmd.Flags().GetString("output")
			return view.ValidateFormat(output)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/nvl/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log debug details to stderr")
	_ = cmd.RegisterFlagCompletionFunc("output", completion.OutputFormats)

	// Set version template
	cmd.SetVersionTemplate(version.Template())

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(parse.NewCmdParse())
	cmd.AddCommand(chapter.NewCmdChapter())
	cmd.AddCommand(elements.NewCmdElements())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
