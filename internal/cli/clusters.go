package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/knomap/knomap/pkg/concept"
)

// clustersCommand creates the clusters command for cluster analysis.
func (c *CLI) clustersCommand() *cobra.Command {
	var (
		minSize int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "clusters [graph.json]",
		Short: "Identify connected clusters of concepts",
		Long: `Identify connected clusters of concepts.

Each cluster is a connected component with at least --min-size members.
The centroid is the member with the most links inside the cluster.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runClusters(cmd, args[0], minSize, noCache)
		},
	}

	cmd.Flags().IntVar(&minSize, "min-size", 0, "minimum cluster size (0 = engine default)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runClusters(cmd *cobra.Command, input string, minSize int, noCache bool) error {
	g, err := concept.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(cmd, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(cmd.Context()))
	clusters, err := runner.Clusters(cmd.Context(), g, minSize)
	if err != nil {
		return fmt.Errorf("identify clusters: %w", err)
	}
	prog.done("Clusters identified")

	if len(clusters) == 0 {
		printInfo("No clusters found")
		return nil
	}
	printSuccess("Found %d clusters", len(clusters))
	for i, cl := range clusters {
		printDetail("cluster %d: %d members, centroid %s", i+1, len(cl.NodeIDs), cl.Centroid)
		printDetail("  %s", strings.Join(cl.NodeIDs, ", "))
	}
	return nil
}
