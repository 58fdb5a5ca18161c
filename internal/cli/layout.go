package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmichalek/netlayout/pkg/io"
	"github.com/jmichalek/netlayout/pkg/layout"
	"github.com/jmichalek/netlayout/pkg/pipeline"
	"github.com/jmichalek/netlayout/pkg/topo"
)

// layoutCommand creates the layout command for computing device positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output   string
		noCache  bool
		selected string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [topology.json]",
		Short: "Compute device positions for a topology file",
		Long: `Compute device positions for a topology file.

The layout command reads a topology.json file, runs the selected placement
strategy, and writes the same topology back with updated positions. The
output can be rendered to SVG/PNG/DOT using the 'render' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base := c.pipelineOptions()
			applyLayoutFlags(cmd, &base, opts)
			base.Selected = parseSelected(selected)
			if len(base.Selected) > 0 {
				base.Scope = string(topo.ScopeSelected)
			}
			return c.runLayout(cmd.Context(), args[0], base, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Layout flags
	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", "", "placement strategy: force_directed (default), hierarchical, radial, grid")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "force-directed iteration count")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "viewport width")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "viewport height")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed for reproducible runs")
	cmd.Flags().StringVar(&selected, "select", "", "layout only these device IDs (comma-separated)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached result exists")

	return cmd
}

// applyLayoutFlags copies explicitly set layout flags over the config-seeded
// defaults, so flags win over the config file which wins over built-ins.
func applyLayoutFlags(cmd *cobra.Command, base *pipeline.Options, flags pipeline.Options) {
	if cmd.Flags().Changed("algorithm") {
		base.Algorithm = flags.Algorithm
	}
	if cmd.Flags().Changed("iterations") {
		base.Iterations = flags.Iterations
	}
	if cmd.Flags().Changed("width") {
		base.Width = flags.Width
	}
	if cmd.Flags().Changed("height") {
		base.Height = flags.Height
	}
	if cmd.Flags().Changed("seed") {
		base.Seed = flags.Seed
	}
	if cmd.Flags().Changed("refresh") {
		base.Refresh = flags.Refresh
	}
}

// runLayout loads the topology, computes the layout, and writes the
// repositioned topology back out.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	g, vp, err := io.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load topology %s: %w", input, err)
	}
	useFileViewport(&opts, vp)

	// With --select, only the chosen devices move. Layout runs on the
	// induced subgraph so links to unselected devices exert no pull.
	work := g
	if opts.Scope == string(topo.ScopeSelected) {
		work = subgraph(g, opts.Selected)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Algorithm))
	spinner.Start()

	result, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, work, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	writePositions(g, result.Positions)

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := io.ExportJSON(g, opts.Viewport(), outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(g.NodeCount(), g.EdgeCount(), result.Crossings, cacheHit)
	printNewline()
	printNextStep("Render", "netlayout render "+outputPath)

	return nil
}

// useFileViewport adopts the viewport stored in the topology file unless the
// options already carry explicit dimensions.
func useFileViewport(opts *pipeline.Options, vp layout.Viewport) {
	if vp.Width > 0 && opts.Width == pipeline.DefaultWidth && opts.Height == pipeline.DefaultHeight {
		opts.Width = vp.Width
		opts.Height = vp.Height
	}
}

// writePositions copies computed positions onto the graph's nodes. Ghost
// entries in the result (IDs without a node) are skipped.
func writePositions(g *topo.Graph, positions layout.Result) {
	for id, p := range positions {
		if n, ok := g.Node(id); ok {
			n.Position = p
		}
	}
}

// subgraph builds the induced subgraph over the given device IDs. Unknown
// IDs are skipped; links with an endpoint outside the selection are dropped.
func subgraph(g *topo.Graph, ids []string) *topo.Graph {
	keep := make(map[string]bool, len(ids))
	sub := topo.New()
	for _, id := range ids {
		n, ok := g.Node(id)
		if !ok || keep[id] {
			continue
		}
		keep[id] = true
		_ = sub.AddNode(*n)
	}
	for _, e := range g.Edges() {
		if keep[e.Source] && keep[e.Target] {
			_ = sub.AddEdge(e)
		}
	}
	return sub
}
