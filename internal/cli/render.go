package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathorder/pkg/errors"
	"github.com/matzehuels/pathorder/pkg/layerio"
	"github.com/matzehuels/pathorder/pkg/pipeline"
)

// renderCommand creates the render command for the debug graph views.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format   string
		output   string
		config   string
		scale    float64
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "render [layer.json]",
		Short: "Draw the optimizer graph of a layer",
		Long: `Draw the optimizer graph of a layer before ordering.

Formats:
  svg       nodes and directed edges drawn directly
  dot       Graphviz DOT source with pinned node positions
  graphviz  DOT laid out by the embedded Graphviz and rendered to SVG

Use 'order --svg' to draw the ordered result instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(format, pipeline.ValidGraphFormats); err != nil {
				return err
			}
			opts, err := loadOptions(config)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("scale") {
				opts.Scale = scale
			}
			if cmd.Flags().Changed("detailed") {
				opts.Detailed = detailed
			}
			return c.runRender(cmd.Context(), args[0], opts, format, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.GraphFormatSVG, "output format: svg, dot, graphviz")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with the format's extension)")
	cmd.Flags().StringVar(&config, "config", "", "TOML options file")
	cmd.Flags().Float64Var(&scale, "scale", 0, "pixels per model unit")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label nodes with kind, priority and position")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, format, output string) error {
	opts.Logger = loggerFromContext(ctx)

	layer, err := layerio.ImportLayer(input)
	if err != nil {
		return err
	}
	if output == "" {
		output = strings.TrimSuffix(input, ".json") + "." + extension(format)
	}

	s := newSpinner(ctx, os.Stderr, "Rendering "+input)
	s.Start()
	data, err := pipeline.RenderGraph(ctx, layer, opts, format)
	if err == nil {
		err = os.WriteFile(output, data, 0644)
	}
	s.StopWith(err, fmt.Sprintf("Rendered %s", format))
	if err != nil {
		return err
	}
	printFile(output)
	return nil
}

// extension returns the file extension for a graph format.
func extension(format string) string {
	if format == pipeline.GraphFormatDOT {
		return "dot"
	}
	return "svg"
}
