// Package elements provides the elements command.
package elements

import (
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/novel-cli/internal/view"
	"github.com/open-cli-collective/novel-cli/pkg/novel"
)

type elementsOptions struct {
	output  string
	noColor bool
	stdout  io.Writer
}

// descriptorView is the rendered form of one registered variant.
type descriptorView struct {
	Order      int    `json:"order"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	StartChars string `json:"start_chars,omitempty"`
	EndChars   string `json:"end_chars,omitempty"`
	Fallback   bool   `json:"fallback,omitempty"`
}

// NewCmdElements creates the elements command.
func NewCmdElements() *cobra.Command {
	opts := &elementsOptions{}

	cmd := &cobra.Command{
		Use:   "elements",
		Short: "List the element kinds nvl recognizes",
		Long: `List the registered element variants in the order they are tried.
Narration is the fallback for any word no other variant claims.`,
		Example: `  # List element kinds
  nvl elements`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runElements(novel.Default(), opts)
		},
	}

	return cmd
}

func describe(reg *novel.Registry) []descriptorView {
	descriptors := reg.Descriptors()
	views := make([]descriptorView, 0, len(descriptors)+1)
	for i, d := range descriptors {
		views = append(views, descriptorView{
			Order:      i + 1,
			Name:       d.Name,
			Kind:       string(d.Kind),
			StartChars: d.StartChars,
			EndChars:   d.EndChars,
		})
	}
	fallback := novel.NarrationDescriptor()
	views = append(views, descriptorView{
		Order:    len(descriptors) + 1,
		Name:     fallback.Name,
		Kind:     string(fallback.Kind),
		Fallback: true,
	})
	return views
}

func runElements(reg *novel.Registry, opts *elementsOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}

	views := describe(reg)
	if view.Format(opts.output) == view.FormatJSON {
		return renderer.RenderJSON(views)
	}

	headers := []string{"ORDER", "NAME", "KIND", "START", "END"}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		kind := v.Kind
		if view.Format(opts.output) == view.FormatTable {
			kind = view.KindLabel(kind)
		}
		order := strconv.Itoa(v.Order)
		if v.Fallback {
			order = "-"
		}
		rows = append(rows, []string{order, v.Name, kind, chars(v.StartChars), chars(v.EndChars)})
	}
	renderer.RenderTable(headers, rows)
	return nil
}

// chars spaces out a character set for display.
func chars(set string) string {
	if set == "" {
		return "-"
	}
	return strings.Join(strings.Split(set, ""), " ")
}
