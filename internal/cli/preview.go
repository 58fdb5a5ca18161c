package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jmichalek/netlayout/pkg/io"
	"github.com/jmichalek/netlayout/pkg/layout"
	"github.com/jmichalek/netlayout/pkg/pipeline"
	"github.com/jmichalek/netlayout/pkg/topo"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// previewCommand creates the preview command for comparing algorithms.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "preview [topology.json]",
		Short: "Compare layout algorithms interactively",
		Long: `Compare layout algorithms interactively.

The preview command loads a topology and lets you run each placement
strategy in turn, showing device count, link crossings, and timing side by
side. Press enter to run the highlighted strategy and 'w' to write the last
run result back to a topology file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file for 'w' (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input, output string, noCache bool) error {
	g, vp, err := io.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load topology %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.pipelineOptions()
	useFileViewport(&opts, vp)

	if output == "" {
		output = strings.TrimSuffix(input, ".json") + ".layout.json"
	}

	model := newPreviewModel(ctx, runner, g, opts, output)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	if m, ok := final.(previewModel); ok && m.written != "" {
		printSuccess("Layout written")
		printFile(m.written)
	}
	return nil
}

// =============================================================================
// PreviewModel - Interactive Algorithm Comparison
// =============================================================================

// previewRun holds the outcome of one strategy run.
type previewRun struct {
	positions layout.Result
	crossings int
	duration  time.Duration
	cached    bool
	err       error
}

// runDoneMsg reports a finished strategy run back to the update loop.
type runDoneMsg struct {
	algorithm layout.Algorithm
	run       previewRun
}

// previewModel is the bubbletea model for the algorithm comparison view.
type previewModel struct {
	ctx        context.Context
	runner     *pipeline.Runner
	graph      *topo.Graph
	opts       pipeline.Options
	output     string
	algorithms []layout.Algorithm
	cursor     int
	runs       map[layout.Algorithm]previewRun
	running    bool
	written    string
	writeErr   error
}

func newPreviewModel(ctx context.Context, runner *pipeline.Runner, g *topo.Graph, opts pipeline.Options, output string) previewModel {
	return previewModel{
		ctx:        ctx,
		runner:     runner,
		graph:      g,
		opts:       opts,
		output:     output,
		algorithms: layout.Algorithms(),
		runs:       make(map[layout.Algorithm]previewRun),
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.algorithms)-1 {
				m.cursor++
			}
		case "enter":
			if m.running {
				return m, nil
			}
			m.running = true
			return m, m.runSelected()
		case "w":
			run, ok := m.runs[m.algorithms[m.cursor]]
			if !ok || run.err != nil {
				return m, nil
			}
			m.writeErr = m.writeResult(run)
			if m.writeErr == nil {
				m.written = m.output
				return m, tea.Quit
			}
		}
	case runDoneMsg:
		m.running = false
		m.runs[msg.algorithm] = msg.run
	}
	return m, nil
}

// runSelected runs the highlighted strategy and reports back via runDoneMsg.
func (m previewModel) runSelected() tea.Cmd {
	algorithm := m.algorithms[m.cursor]
	opts := m.opts
	opts.Algorithm = string(algorithm)

	return func() tea.Msg {
		start := time.Now()
		result, hit, err := m.runner.ComputeLayoutWithCacheInfo(m.ctx, m.graph, opts)
		run := previewRun{duration: time.Since(start).Round(time.Millisecond), cached: hit, err: err}
		if err == nil {
			run.positions = result.Positions
			run.crossings = result.Crossings
		}
		return runDoneMsg{algorithm: algorithm, run: run}
	}
}

// writeResult applies the run's positions and writes the topology file.
func (m previewModel) writeResult(run previewRun) error {
	writePositions(m.graph, run.positions)
	return io.ExportJSON(m.graph, m.opts.Viewport(), m.output)
}

// Canvas cell dimensions for the position sketch.
const (
	canvasCols = 48
	canvasRows = 14
)

// renderCanvas sketches the computed positions as a character grid. Each
// device shows as the first rune of its ID; collisions keep the first writer.
func (m previewModel) renderCanvas(positions layout.Result) string {
	vp := m.opts.Viewport()
	if vp.Width <= 0 || vp.Height <= 0 || len(positions) == 0 {
		return ""
	}

	grid := make([][]rune, canvasRows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat("·", canvasCols))
	}

	for _, id := range m.graph.NodeIDs() {
		p, ok := positions[id]
		if !ok {
			continue
		}
		col := int(p.X / vp.Width * float64(canvasCols-1))
		row := int(p.Y / vp.Height * float64(canvasRows-1))
		if col < 0 || col >= canvasCols || row < 0 || row >= canvasRows {
			continue
		}
		if grid[row][col] == '·' {
			grid[row][col] = []rune(id)[0]
		}
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(listDimStyle.Render(string(row)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout Preview"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d devices · %d links", m.graph.NodeCount(), m.graph.EdgeCount())))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ run  w write  q quit"))
	b.WriteString("\n\n")

	rows := [][]string{}
	for i, algorithm := range m.algorithms {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		crossings, duration, status := "—", "—", ""
		if run, ok := m.runs[algorithm]; ok {
			switch {
			case run.err != nil:
				status = styleIconError.Render(iconError)
			case run.cached:
				status = styleCached.Render(iconCached)
			default:
				status = styleComputed.Render(iconFresh)
			}
			if run.err == nil {
				crossings = fmt.Sprintf("%d", run.crossings)
				duration = run.duration.String()
			}
		}
		if m.running && i == m.cursor {
			status = listDimStyle.Render("running...")
		}

		name := string(algorithm)
		if i == m.cursor {
			name = listSelectedStyle.Render(name)
		}
		rows = append(rows, []string{cursor, name, crossings, duration, status})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Algorithm", "Crossings", "Time", "").
		Rows(rows...)

	b.WriteString(t.Render())
	b.WriteString("\n")

	if run, ok := m.runs[m.algorithms[m.cursor]]; ok && run.err == nil {
		b.WriteString("\n")
		b.WriteString(m.renderCanvas(run.positions))
	}

	if m.writeErr != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.writeErr.Error())
		b.WriteString("\n")
	}

	return b.String()
}
