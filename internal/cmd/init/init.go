// Package init provides the init command for nvl.
package init

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/novel-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/novel-cli/internal/config"
	"github.com/open-cli-collective/novel-cli/internal/store"
)

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var (
		dbPath   string
		novel    string
		noVerify bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize nvl configuration",
		Long: `Initialize nvl with your chapter database location and defaults.

This command will guide you through choosing where parsed chapters are
stored, the novel chapters belong to by default, and the preferred input
and output formats. The configuration will be saved to ~/.config/nvl/config.yml.`,
		Example: `  # Interactive setup
  nvl init

  # Pre-populate the default novel
  nvl init --novel "The Road"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmdutil.ConfigPath(cmd), dbPath, novel, noVerify)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Chapter database path")
	cmd.Flags().StringVar(&novel, "novel", "", "Default novel for chapter commands")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip database verification")

	return cmd
}

func runInit(configPath, prefillDB, prefillNovel string, noVerify bool) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{
		DBPath:       prefillDB,
		DefaultNovel: prefillNovel,
		OutputFormat: "table",
		InputFormat:  "auto",
	}

	// Build the form
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Chapter Database").
				Description("Where parsed chapters are stored (leave empty for the default)").
				Placeholder(config.DefaultDBPath()).
				Value(&cfg.DBPath).
				Validate(func(s string) error {
					if s != "" && strings.TrimSpace(s) == "" {
						return fmt.Errorf("database path must not be blank")
					}
					return nil
				}),

			huh.NewInput().
				Title("Default Novel (optional)").
				Description("Novel that chapter commands use when --novel is omitted").
				Placeholder("The Road").
				Value(&cfg.DefaultNovel),

			huh.NewSelect[string]().
				Title("Output Format").
				Options(huh.NewOptions("table", "json", "plain")...).
				Value(&cfg.OutputFormat),

			huh.NewSelect[string]().
				Title("Input Format").
				Description("auto picks the format from the file extension and content").
				Options(huh.NewOptions("auto", "plain", "markdown", "html")...).
				Value(&cfg.InputFormat),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.DBPath = strings.TrimSpace(cfg.DBPath)
	cfg.DefaultNovel = strings.TrimSpace(cfg.DefaultNovel)

	// Validate
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Verify database unless skipped
	if !noVerify {
		fmt.Print("Verifying chapter database... ")
		if err := verifyDatabase(cfg); err != nil {
			fmt.Println("failed!")
			return fmt.Errorf("database verification failed: %w", err)
		}
		fmt.Println("success!")
	}

	// Save configuration
	if err := cfg.Save(configPath); err != nil {
		return err
	}

	printNextSteps(os.Stdout, configPath)
	return nil
}

func printNextSteps(w io.Writer, configPath string) {
	fmt.Fprintf(w, "\nConfiguration saved to %s\n", configPath)
	fmt.Fprintln(w, "\nYou're all set! Try running:")
	fmt.Fprintln(w, "  nvl parse chapter-01.txt")
	fmt.Fprintln(w, "  nvl chapter import --novel <NOVEL> chapter-01.txt")
}

// verifyDatabase opens the configured database, creating and migrating it
// when needed.
func verifyDatabase(cfg *config.Config) error {
	s, err := store.Open(cfg.ResolvedDBPath())
	if err != nil {
		return err
	}
	return s.Close()
}
