package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/novel-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/novel-cli/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current nvl configuration with source indicators.`,
		Example: `  # Show current config
  nvl config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(cmdutil.ConfigPath(cmd), noColor, os.Stdout)
		},
	}

	return cmd
}

func runShow(configPath string, noColor bool, w io.Writer) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, envVar string) {
		_, _ = bold.Fprintf(w, "%-10s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}

		fmt.Fprint(w, value)

		source := "config"
		if fileErr != nil || fileValue != value {
			source = "-"
		}
		if v := os.Getenv(envVar); v != "" && v == value {
			source = envVar
		}

		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	workers, fileWorkers := "", ""
	if cfg.Workers > 0 {
		workers = strconv.Itoa(cfg.Workers)
	}
	if fileCfg.Workers > 0 {
		fileWorkers = strconv.Itoa(fileCfg.Workers)
	}

	printField("Database", cfg.DBPath, fileCfg.DBPath, envDBPath)
	printField("Novel", cfg.DefaultNovel, fileCfg.DefaultNovel, envDefaultNovel)
	printField("Output", cfg.OutputFormat, fileCfg.OutputFormat, envOutput)
	printField("Input", cfg.InputFormat, fileCfg.InputFormat, envInputFormat)
	printField("Workers", workers, fileWorkers, envWorkers)

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}
	if cfg.DBPath == "" {
		_, _ = dim.Fprintf(w, "Database:    %s (default)\n", cfg.ResolvedDBPath())
	}

	return nil
}
