// Package cmdutil holds helpers shared by nvl commands.
package cmdutil

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/open-cli-collective/novel-cli/internal/config"
	"github.com/open-cli-collective/novel-cli/internal/logging"
	"github.com/open-cli-collective/novel-cli/internal/store"
	"github.com/open-cli-collective/novel-cli/pkg/chaptertext"
	"github.com/open-cli-collective/novel-cli/pkg/novel"
)

// ConfigPath returns the --config flag value, or the default config path.
func ConfigPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return config.DefaultConfigPath()
}

// OutputFlag returns the --output flag value and whether it was set
// explicitly.
func OutputFlag(cmd *cobra.Command) (string, bool) {
	output, _ := cmd.Flags().GetString("output")
	return output, cmd.Flags().Changed("output")
}

// LoadConfig loads and validates the configuration at path.
func LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w (run 'nvl init' to configure)", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'nvl init' to configure)", err)
	}
	return cfg, nil
}

// ResolveOutput picks the output format: an explicit flag wins over the
// configured default, which wins over the flag's default.
func ResolveOutput(flag string, explicit bool, cfg *config.Config) string {
	if !explicit && cfg != nil && cfg.OutputFormat != "" {
		return cfg.OutputFormat
	}
	return flag
}

// ResolveWorkers returns the number of chapters parsed in parallel.
func ResolveWorkers(flag int, cfg *config.Config) int {
	if flag > 0 {
		return flag
	}
	if cfg != nil && cfg.Workers > 0 {
		return cfg.Workers
	}
	return runtime.NumCPU()
}

// OpenStore opens the chapter database configured in cfg.
func OpenStore(cfg *config.Config) (*store.Store, error) {
	s, err := store.Open(cfg.ResolvedDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open chapter database: %w", err)
	}
	return s, nil
}

// Source is a chapter file read into memory.
type Source struct {
	Name string
	Data []byte
}

// ReadSources reads every named file. "-" reads stdin and may appear once.
func ReadSources(names []string, stdin io.Reader) ([]Source, error) {
	sources := make([]Source, 0, len(names))
	stdinUsed := false
	for _, name := range names {
		var (
			data []byte
			err  error
		)
		if name == "-" {
			if stdinUsed {
				return nil, fmt.Errorf("stdin can only be read once")
			}
			stdinUsed = true
			if stdin == nil {
				stdin = os.Stdin
			}
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		sources = append(sources, Source{Name: name, Data: data})
	}
	return sources, nil
}

// ParseOptions controls ParseSources.
type ParseOptions struct {
	Format      chaptertext.Format
	FirstNumber int
	Title       string
	Workers     int
	Registry    *novel.Registry
}

// ParseSources loads and classifies every source in parallel. Source i
// becomes chapter FirstNumber+i; an empty Title takes the document heading.
func ParseSources(ctx context.Context, sources []Source, opts ParseOptions) ([]*novel.Chapter, error) {
	if opts.FirstNumber <= 0 {
		return nil, fmt.Errorf("chapter number must be greater than zero")
	}
	reg := opts.Registry
	if reg == nil {
		reg = novel.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	chapters := make([]*novel.Chapter, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			format := opts.Format
			if format == chaptertext.FormatAuto || format == "" {
				format = chaptertext.DetectFormat(src.Name, src.Data)
			}
			doc, err := chaptertext.Load(src.Data, format)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", src.Name, err)
			}

			title := opts.Title
			if title == "" {
				title = doc.Title
			}
			ch := novel.ParseChapter(opts.FirstNumber+i, title, doc.Paragraphs, reg)
			logging.Debug("parsed chapter",
				"source", src.Name,
				"format", string(format),
				"paragraphs", len(ch.Paragraphs()),
			)
			chapters[i] = ch
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return chapters, nil
}
