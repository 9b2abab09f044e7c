package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperr "github.com/reeflow/reeflow/pkg/errors"
	"github.com/reeflow/reeflow/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path (or base path for multiple formats)
	formats []string // output formats: "svg", "dot", "json"
	style    string   // SVG style name
	year     string   // year to render (empty means most recent)
	all      bool     // render every year in the dataset
	nodelink bool     // also emit a Graphviz-rendered structural SVG
}

// newRenderCmd creates the render command for generating diagram
// artifacts. It supports SVG, Graphviz DOT, and JSON output.
//
// Default settings:
//   - format: svg
//   - year: the most recent year in the dataset
//   - output: reeflow-<year>.<format> in the working directory
func newRenderCmd(configPath *string) *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a flow diagram to SVG, DOT, or JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			for _, f := range opts.formats {
				if err := apperr.ValidateFormat(f); err != nil {
					return err
				}
			}
			if opts.style != "" && !render.ValidStyles[opts.style] {
				return apperr.New(apperr.ErrCodeInvalidInput, "unknown style %q", opts.style)
			}
			dataPath := ""
			if len(args) == 1 {
				dataPath = args[0]
			}
			return runRender(cmd.Context(), *configPath, dataPath, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "SVG style: simple (default), dark")
	cmd.Flags().StringVarP(&opts.year, "year", "y", "", "year to render (default: most recent)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "render every year in the dataset")
	cmd.Flags().BoolVar(&opts.nodelink, "nodelink", false, "also emit a Graphviz-rendered structural SVG")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

func runRender(ctx context.Context, configPath, dataPath string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	a, err := newApp(ctx, configPath, dataPath, logger)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	style := opts.style
	if style == "" {
		style = a.cfg.Render.Style
	}

	var years []int
	if opts.all {
		years = a.session.Years()
	} else {
		year, err := resolveYear(opts.year, a.session)
		if err != nil {
			return err
		}
		years = []int{year}
	}

	prog := newProgress(logger)
	multiple := len(years)*len(opts.formats) > 1

	type artifact struct {
		path string
		data []byte
	}
	var artifacts []artifact

	spinner := newSpinner("Rendering...")
	spinner.Start()
	for _, year := range years {
		for _, format := range opts.formats {
			data, err := a.session.Render(ctx, year, format, style)
			if err != nil {
				spinner.StopWithError(err.Error())
				return err
			}
			artifacts = append(artifacts, artifact{
				path: outputPath(opts.output, year, format, multiple),
				data: data,
			})
		}
		if opts.nodelink {
			dot, err := a.session.Render(ctx, year, "dot", style)
			if err != nil {
				spinner.StopWithError(err.Error())
				return err
			}
			svg, err := render.DOTToSVG(ctx, string(dot))
			if err != nil {
				spinner.StopWithError(err.Error())
				return err
			}
			artifacts = append(artifacts, artifact{
				path: outputPath(opts.output, year, "nodelink.svg", true),
				data: svg,
			})
		}
	}
	spinner.Stop()

	for _, art := range artifacts {
		if err := os.WriteFile(art.path, art.data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", art.path, err)
		}
		printFile(art.path)
	}
	for _, year := range years {
		d, err := a.session.Diagram(ctx, year)
		if err != nil {
			return err
		}
		printStats(len(d.Graph.Nodes), len(d.Graph.Links), false)
	}
	prog.done(fmt.Sprintf("Rendered %d artifacts", len(artifacts)))
	return nil
}

// outputPath derives the output filename for a year and format. With a
// single artifact an explicit --output is used verbatim; with several it
// becomes a base path that year and format are appended to.
func outputPath(output string, year int, format string, multiple bool) string {
	if output == "" {
		return fmt.Sprintf("%s-%d.%s", appName, year, format)
	}
	if !multiple {
		return output
	}
	base := strings.TrimSuffix(output, filepath.Ext(output))
	return fmt.Sprintf("%s-%d.%s", base, year, format)
}
