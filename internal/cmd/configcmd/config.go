// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"
)

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage nvl configuration",
		Long:  `Commands for viewing, testing, and clearing nvl configuration.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdTest())
	cmd.AddCommand(NewCmdClear())

	return cmd
}

// envVars lists every environment variable that overrides the config file.
func envVars() []string {
	return []string{
		envDBPath, envDefaultNovel, envOutput, envInputFormat, envWorkers,
	}
}

const (
	envDBPath       = "NVL_DB_PATH"
	envDefaultNovel = "NVL_DEFAULT_NOVEL"
	envOutput       = "NVL_OUTPUT"
	envInputFormat  = "NVL_INPUT_FORMAT"
	envWorkers      = "NVL_WORKERS"
)
