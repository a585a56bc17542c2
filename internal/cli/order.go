package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathorder/pkg/layerio"
	"github.com/matzehuels/pathorder/pkg/optimizer"
	"github.com/matzehuels/pathorder/pkg/pipeline"
)

// orderFlags holds the command-line flags of the order command.
type orderFlags struct {
	output   string // output JSON file; stdout when empty
	config   string // TOML options file
	svg      string // optional SVG of the ordered runs
	strategy string // greedy or stitch
	simple   bool   // use the non-bucketed optimizer
	link     bool   // merge adjacent runs (simple optimizer)
	detailed bool   // add run titles to the SVG
	noCache  bool
	refresh  bool
}

// orderCommand creates the order command.
func (c *CLI) orderCommand() *cobra.Command {
	var f orderFlags

	cmd := &cobra.Command{
		Use:   "order [layer.json]",
		Short: "Order a layer's toolpaths to minimize travel",
		Long: `Order a layer's toolpaths to minimize travel.

The layer file lists boundary loops and labeled paths. The result is a
sequence of runs, each a labeled polyline, written as JSON to stdout or to
the file given with -o. Travel moves that the optimizer inserts carry the
"connection" label and never cross a boundary.

Flags override values from --config. Results are cached locally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(f.config)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("strategy") {
				opts.Optimizer.Strategy = optimizer.Strategy(f.strategy)
			}
			if flags.Changed("simple") {
				opts.Simple = f.simple
			}
			if flags.Changed("link") {
				opts.Optimizer.LinkPaths = f.link
			}
			if flags.Changed("detailed") {
				opts.Detailed = f.detailed
			}
			opts.Refresh = f.refresh
			opts.Formats = []string{pipeline.FormatJSON}
			if f.svg != "" {
				opts.Formats = append(opts.Formats, pipeline.FormatSVG)
			}
			return c.runOrder(cmd.Context(), args[0], opts, f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output JSON file (default stdout)")
	cmd.Flags().StringVar(&f.config, "config", "", "TOML options file")
	cmd.Flags().StringVar(&f.svg, "svg", "", "also write an SVG of the ordered runs")
	cmd.Flags().StringVar(&f.strategy, "strategy", string(optimizer.StrategyGreedy), "ordering strategy: greedy, stitch")
	cmd.Flags().BoolVar(&f.simple, "simple", false, "use the simple optimizer (no buckets)")
	cmd.Flags().BoolVar(&f.link, "link", false, "merge adjacent runs with equal labels (simple optimizer)")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "add run titles to the SVG")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

func (c *CLI) runOrder(ctx context.Context, input string, opts pipeline.Options, f orderFlags) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	layer, err := layerio.ImportLayer(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, layer, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Ordered %d runs", len(result.Runs)))

	if f.output == "" {
		_, err := os.Stdout.Write(result.Artifacts[pipeline.FormatJSON])
		if err == nil && f.svg != "" {
			err = os.WriteFile(f.svg, result.Artifacts[pipeline.FormatSVG], 0644)
		}
		return err
	}

	if err := os.WriteFile(f.output, result.Artifacts[pipeline.FormatJSON], 0644); err != nil {
		return fmt.Errorf("write %s: %w", f.output, err)
	}
	if len(result.Runs) == 0 {
		printWarning("Layer %s has nothing to print", input)
	} else {
		printSuccess("Ordered %s", input)
	}
	printStats(result.Output.Stats, result.CacheInfo.OrderHit)
	printFile(f.output)
	if f.svg != "" {
		if err := os.WriteFile(f.svg, result.Artifacts[pipeline.FormatSVG], 0644); err != nil {
			return fmt.Errorf("write %s: %w", f.svg, err)
		}
		printFile(f.svg)
	}
	return nil
}
