package configcmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/novel-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/novel-cli/internal/config"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the configured chapter database",
		Long:  `Test that nvl can open the chapter database with the current configuration.`,
		Example: `  # Test the database
  nvl config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			cfg, err := cmdutil.LoadConfig(cmdutil.ConfigPath(cmd))
			if err != nil {
				return err
			}
			return runTest(cmd.Context(), noColor, os.Stdout, cfg)
		},
	}

	return cmd
}

func runTest(ctx context.Context, noColor bool, w io.Writer, cfg *config.Config) error {
	if noColor {
		color.NoColor = true
	}
	if ctx == nil {
		ctx = context.Background()
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	dbPath := cfg.ResolvedDBPath()
	fmt.Fprintf(w, "Opening chapter database %s...\n", dbPath)

	s, err := cmdutil.OpenStore(cfg)
	if err != nil {
		_, _ = red.Fprintln(w, "✗ Open failed:", err)
		fmt.Fprintln(w, "\nCheck your database path with: nvl config show")
		fmt.Fprintln(w, "Reconfigure with: nvl init")
		return err
	}
	defer func() { _ = s.Close() }()

	count, err := s.CountChapters(ctx)
	if err != nil {
		_, _ = red.Fprintln(w, "✗ Query failed:", err)
		return fmt.Errorf("database query failed: %w", err)
	}

	_, _ = green.Fprintln(w, "✓ Database opened")
	_, _ = green.Fprintln(w, "✓ Schema up to date")
	fmt.Fprintf(w, "\nStored chapters: %d\n", count)

	return nil
}
