// Package chapter provides commands for the stored chapter library.
package chapter

import (
	"github.com/spf13/cobra"
)

// NewCmdChapter creates the chapter command.
func NewCmdChapter() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "chapter",
		Aliases: []string{"chapters", "ch"},
		Short:   "Manage stored chapters",
		Long: `Import parsed chapters into the local chapter database and inspect
them later. Stored chapters keep their raw tokens and are classified
again when viewed.`,
	}

	cmd.AddCommand(NewCmdImport())
	cmd.AddCommand(NewCmdList())
	cmd.AddCommand(NewCmdView())
	cmd.AddCommand(NewCmdElements())
	cmd.AddCommand(NewCmdDelete())

	return cmd
}
