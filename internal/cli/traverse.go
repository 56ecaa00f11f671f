package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/errors"
	"github.com/knomap/knomap/pkg/model"
	"github.com/knomap/knomap/pkg/traverse"
)

// traverseCommand creates the traverse command for graph walks.
func (c *CLI) traverseCommand() *cobra.Command {
	var (
		mode     string
		maxDepth int
	)

	cmd := &cobra.Command{
		Use:   "traverse [graph.json] [start]",
		Short: "Walk the graph from a start concept",
		Long: `Walk the graph from a start concept.

Visits every concept reachable from the start within --max-depth hops,
in breadth-first or depth-first order.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTraverse(args[0], args[1], mode, maxDepth)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(traverse.BFS), "traversal order: bfs, dfs")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum depth in hops (0 = engine default)")

	return cmd
}

func (c *CLI) runTraverse(input, startID, mode string, maxDepth int) error {
	if err := errors.ValidateNodeID(startID); err != nil {
		return err
	}
	if mode != string(traverse.BFS) && mode != string(traverse.DFS) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid mode: %q (must be bfs or dfs)", mode)
	}

	g, err := concept.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	visited := traverse.Traverse(model.Build(g), startID, traverse.Mode(mode), maxDepth)
	if len(visited) == 0 {
		printWarning("Start concept not found: %s", startID)
		return nil
	}

	printSuccess("Visited %d concepts (%s)", len(visited), mode)
	for i, id := range visited {
		printDetail("%3d  %s", i+1, id)
	}
	return nil
}
