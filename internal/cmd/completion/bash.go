package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdBash creates the bash completion command.
func NewCmdBash() *cobra.Command {
	return &cobra.Command{
		Use:   "bash",
		Short: "Generate bash completion script",
		Long: `Generate bash completion script for nvl.

To load completions in your current shell session:

  source <(nvl completion bash)

To load completions for every new session:

  # Linux
  nvl completion bash > /etc/bash_completion.d/nvl

  # macOS (requires bash-completion)
  nvl completion bash > $(brew --prefix)/etc/bash_completion.d/nvl`,
		Example: `  # Load in current session
  source <(nvl completion bash)

  # Install permanently (Linux)
  nvl completion bash | sudo tee /etc/bash_completion.d/nvl > /dev/null

  # Install permanently (macOS with Homebrew)
  nvl completion bash > $(brew --prefix)/etc/bash_completion.d/nvl`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		},
	}
}
