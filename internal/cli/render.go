package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmichalek/netlayout/pkg/io"
	"github.com/jmichalek/netlayout/pkg/layout"
	"github.com/jmichalek/netlayout/pkg/pipeline"
	"github.com/jmichalek/netlayout/pkg/render"
	"github.com/jmichalek/netlayout/pkg/topo"
)

// renderCommand creates the render command for producing diagram images.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		noCache    bool
		formatsStr string
		skipLayout bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [topology.json]",
		Short: "Render a topology to SVG, PNG, or DOT",
		Long: `Render a topology to SVG, PNG, or DOT.

The render command reads a topology.json file, computes a layout (unless
--keep-positions is given, in which case the stored positions are used
as-is), and renders the result. Positions are pinned, so the image matches
the computed coordinates exactly.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base := c.pipelineOptions()
			applyLayoutFlags(cmd, &base, opts)
			base.Formats = parseFormats(formatsStr)
			base.Labels = opts.Labels
			if err := pipeline.ValidateFormats(base.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], base, output, noCache, skipLayout)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Layout flags
	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", "", "placement strategy: force_directed (default), hierarchical, radial, grid")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "force-directed iteration count")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "viewport width")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "viewport height")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed for reproducible runs")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.Flags().BoolVar(&skipLayout, "keep-positions", false, "render the stored positions without recomputing the layout")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot (comma-separated)")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "include device types in node labels")

	return cmd
}

// runRender loads the topology, runs the pipeline, and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache, skipLayout bool) error {
	g, vp, err := io.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load topology %s: %w", input, err)
	}
	useFileViewport(&opts, vp)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering topology...")
	spinner.Start()

	var (
		result   *pipeline.Result
		cacheHit bool
	)
	if skipLayout {
		result, cacheHit, err = c.renderStored(ctx, runner, g, opts)
	} else {
		result, err = runner.Execute(ctx, g, opts)
		if result != nil {
			cacheHit = result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
		}
	}
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		stats:     result.Stats,
		crossings: result.Crossings,
		cacheHit:  cacheHit,
	})
}

// renderStored renders the positions already present in the file, skipping
// the layout stage entirely.
func (c *CLI) renderStored(ctx context.Context, runner *pipeline.Runner, g *topo.Graph, opts pipeline.Options) (*pipeline.Result, bool, error) {
	result := &pipeline.Result{
		Positions: storedPositions(g),
		Stats:     pipeline.Stats{NodeCount: g.NodeCount(), EdgeCount: g.EdgeCount()},
	}
	result.Crossings = layout.CountCrossings(g.Edges(), result.Positions)

	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, g, result, opts)
	if err != nil {
		return nil, false, err
	}
	result.Artifacts = artifacts
	return result, hit, nil
}

// storedPositions collects the topology's current positions as a layout result.
func storedPositions(g *topo.Graph) layout.Result {
	positions := make(layout.Result, g.NodeCount())
	for _, n := range g.Nodes() {
		positions[n.ID] = n.Position
	}
	return positions
}

// =============================================================================
// Artifact Writing
// =============================================================================

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	stats     pipeline.Stats
	crossings int
	cacheHit  bool
}

// writeArtifacts writes each rendered format to its own file and prints a
// summary. With a single format the output flag names the file directly;
// with several it acts as a base path.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)

	printSuccess("Render complete")
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}

		path := base + "." + format
		if p.output != "" && len(p.formats) == 1 {
			path = p.output
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(p.stats.NodeCount, p.stats.EdgeCount, p.crossings, p.cacheHit)

	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output carries a
// known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := render.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
