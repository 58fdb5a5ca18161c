package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmichalek/netlayout/pkg/config"
	pkgio "github.com/jmichalek/netlayout/pkg/io"
	"github.com/jmichalek/netlayout/pkg/store"
)

// topoCommand creates the topology store management command.
func (c *CLI) topoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topo",
		Short: "Manage stored topologies",
		Long: `Manage stored topologies.

Topologies are kept in the store backend selected by the config file. The
memory backend only lives for a single process, so for the CLI a mongo
backend is the useful choice.`,
	}

	cmd.AddCommand(c.topoSaveCommand())
	cmd.AddCommand(c.topoListCommand())
	cmd.AddCommand(c.topoExportCommand())
	cmd.AddCommand(c.topoDeleteCommand())

	return cmd
}

// topoSaveCommand creates the "topo save" subcommand.
func (c *CLI) topoSaveCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save [topology.json]",
		Short: "Save a topology file to the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTopoSave(cmd.Context(), args[0], name)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "topology name (default: input file name without extension)")

	return cmd
}

func (c *CLI) runTopoSave(ctx context.Context, input, name string) error {
	g, vp, err := pkgio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load topology %s: %w", input, err)
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}

	s, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	rec := store.NewRecord(name, g, vp)
	if err := s.Save(ctx, rec); err != nil {
		return fmt.Errorf("save topology: %w", err)
	}

	printSuccess("Saved topology %q", name)
	printDetail("ID: %s", rec.ID)
	printDetail("%d devices · %d links", len(rec.Nodes), len(rec.Links))
	return nil
}

// topoListCommand creates the "topo list" subcommand.
func (c *CLI) topoListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored topologies",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			records, err := s.List(ctx)
			if err != nil {
				return fmt.Errorf("list topologies: %w", err)
			}
			if len(records) == 0 {
				printInfo("No stored topologies")
				return nil
			}

			for _, rec := range records {
				printKeyValue(rec.Name, fmt.Sprintf("%d devices · %d links · updated %s",
					len(rec.Nodes), len(rec.Links), rec.UpdatedAt.Format("2006-01-02 15:04")))
			}
			return nil
		},
	}
}

// topoExportCommand creates the "topo export" subcommand.
func (c *CLI) topoExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [name]",
		Short: "Export a stored topology as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			rec, err := s.GetByName(ctx, args[0])
			if err != nil {
				return err
			}
			g, err := rec.Graph()
			if err != nil {
				return err
			}

			if output == "" {
				return pkgio.WriteJSON(g, rec.Viewport, os.Stdout)
			}
			if err := pkgio.ExportJSON(g, rec.Viewport, output); err != nil {
				return err
			}
			printSuccess("Exported topology %q", rec.Name)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// topoDeleteCommand creates the "topo delete" subcommand.
func (c *CLI) topoDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored topology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			rec, err := s.GetByName(ctx, args[0])
			if err != nil {
				return err
			}
			if err := s.Delete(ctx, rec.ID); err != nil {
				return err
			}

			printSuccess("Deleted topology %q", rec.Name)
			return nil
		},
	}
}

// openStore builds the configured store and warns when the memory backend is
// in use, since nothing saved there outlives the command.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	if c.Config.Store.Backend != config.StoreMongo {
		printWarning("store backend is %q; saved topologies do not outlive this process", c.Config.Store.Backend)
	}
	s, err := c.newStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}
