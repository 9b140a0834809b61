package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdFish creates the fish completion command.
func NewCmdFish() *cobra.Command {
	return &cobra.Command{
		Use:   "fish",
		Short: "Generate fish completion script",
		Long: `Generate fish completion script for nvl.

To load completions in your current shell session:

  nvl completion fish | source

To load completions for every new session:

  nvl completion fish > ~/.config/fish/completions/nvl.fish`,
		Example: `  # Load in current session
  nvl completion fish | source

  # Install permanently
  nvl completion fish > ~/.config/fish/completions/nvl.fish`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
	}
}
