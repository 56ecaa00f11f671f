package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/errors"
	"github.com/knomap/knomap/pkg/store"
)

// graphsCommand creates the graphs command for stored-graph management.
func (c *CLI) graphsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graphs",
		Short: "Manage graphs stored in MongoDB",
		Long: `Manage graphs stored in MongoDB.

These commands need a mongo_uri in the [store] section of the config file
(~/.config/knomap/config.toml).`,
	}

	cmd.AddCommand(c.graphsListCommand())
	cmd.AddCommand(c.graphsSaveCommand())
	cmd.AddCommand(c.graphsGetCommand())
	cmd.AddCommand(c.graphsDeleteCommand())

	return cmd
}

// openStore connects to the configured MongoDB store.
func (c *CLI) openStore(cmd *cobra.Command) (store.Store, error) {
	uri := c.Config.Store.MongoURI
	if uri == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"no mongo_uri configured; set [store] mongo_uri in the config file")
	}
	return store.NewMongoStore(cmd.Context(), uri, c.Config.Store.Database)
}

func (c *CLI) graphsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored graph names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close(cmd.Context())

			names, err := st.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list graphs: %w", err)
			}
			if len(names) == 0 {
				printInfo("No graphs stored")
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func (c *CLI) graphsSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save [name] [graph.json]",
		Short: "Store a graph under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, input := args[0], args[1]

			g, err := concept.ReadGraphFile(input)
			if err != nil {
				return fmt.Errorf("load graph %s: %w", input, err)
			}

			st, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close(cmd.Context())

			if err := st.Save(cmd.Context(), name, g); err != nil {
				return fmt.Errorf("save graph: %w", err)
			}
			printSuccess("Saved %s", name)
			printStats(len(g.Nodes), len(g.Edges), false)
			return nil
		},
	}
}

func (c *CLI) graphsGetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get [name]",
		Short: "Fetch a stored graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" {
				if err := errors.ValidatePath(output); err != nil {
					return err
				}
			}

			st, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close(cmd.Context())

			rec, err := st.Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("load graph: %w", err)
			}

			if output == "" {
				return concept.WriteGraph(rec.Graph, os.Stdout)
			}
			if err := concept.WriteGraphFile(rec.Graph, output); err != nil {
				return fmt.Errorf("write output %s: %w", output, err)
			}
			printSuccess("Fetched %s", rec.Name)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func (c *CLI) graphsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close(cmd.Context())

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete graph: %w", err)
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}
