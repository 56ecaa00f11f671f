package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/errors"
)

// similarCommand creates the similar command for similarity queries.
func (c *CLI) similarCommand() *cobra.Command {
	var (
		threshold float64
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "similar [graph.json] [concept]",
		Short: "Find concepts similar to a target",
		Long: `Find concepts textually similar to a target.

Similarity combines title edit distance with keyword overlap. Matches at
or above --threshold are listed, best first.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSimilar(cmd, args[0], args[1], threshold, noCache)
		},
	}

	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0, "minimum similarity in (0,1] (0 = engine default)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runSimilar(cmd *cobra.Command, input, targetID string, threshold float64, noCache bool) error {
	if err := errors.ValidateNodeID(targetID); err != nil {
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

	prog := newProgress(loggerFromContext(cmd.Context()))
	matches, err := runner.FindSimilar(cmd.Context(), g, targetID, threshold)
	if err != nil {
		return fmt.Errorf("find similar: %w", err)
	}
	prog.done("Similarity scan finished")

	if len(matches) == 0 {
		printInfo("No similar concepts found")
		return nil
	}
	printSuccess("Found %d similar concepts", len(matches))
	for _, m := range matches {
		title := m.Node.Title
		if title == "" {
			title = m.Node.ID
		}
		printDetail("%.2f  %s (%s)", m.Similarity, title, m.Node.ID)
	}
	return nil
}
