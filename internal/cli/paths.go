package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/errors"
	"github.com/knomap/knomap/pkg/traverse"
)

// pathsCommand creates the paths command for path queries.
func (c *CLI) pathsCommand() *cobra.Command {
	var (
		all      bool
		maxDepth int
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "paths [graph.json] [source] [target]",
		Short: "Find paths between two concepts",
		Long: `Find paths between two concepts.

By default the shortest path is printed. With --all, every simple path up
to --max-depth hops is listed.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPaths(cmd, args[0], args[1], args[2], all, maxDepth, noCache)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "list all simple paths instead of the shortest")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum path length for --all (0 = engine default)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runPaths(cmd *cobra.Command, input, source, target string, all bool, maxDepth int, noCache bool) error {
	ctx := cmd.Context()

	if err := errors.ValidateNodeID(source); err != nil {
		return err
	}
	if err := errors.ValidateNodeID(target); err != nil {
		return err
	}

	g, err := concept.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(cmd, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))

	if all {
		paths, err := runner.AllPaths(ctx, g, source, target, maxDepth)
		if err != nil {
			return fmt.Errorf("find paths: %w", err)
		}
		prog.done("All paths enumerated")
		if len(paths) == 0 {
			printWarning("No path from %s to %s", source, target)
			return nil
		}
		printSuccess("Found %d paths", len(paths))
		for _, p := range paths {
			printDetail("%s", formatPath(p))
		}
		return nil
	}

	res, err := runner.ShortestPath(ctx, g, source, target)
	if err != nil {
		return fmt.Errorf("find path: %w", err)
	}
	prog.done("Shortest path computed")
	if !res.Found {
		printWarning("No path from %s to %s", source, target)
		return nil
	}
	printSuccess("Shortest path has %d hops", res.Distance)
	printDetail("%s", formatPath(res))
	return nil
}

// formatPath renders a path as "a → b → c".
func formatPath(p traverse.PathResult) string {
	return strings.Join(p.Path, " "+iconArrow+" ")
}
