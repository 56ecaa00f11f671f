package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knomap/knomap/pkg/concept"
)

// searchCommand creates the search command for free-text queries.
func (c *CLI) searchCommand() *cobra.Command {
	var opts concept.SearchOptions

	cmd := &cobra.Command{
		Use:   "search [graph.json] [query]",
		Short: "Search concepts by title, explanation, or keywords",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(args[0], args[1], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.CaseSensitive, "case-sensitive", false, "match case exactly")
	cmd.Flags().BoolVar(&opts.ExactMatch, "exact", false, "require a whole-field match")

	return cmd
}

func (c *CLI) runSearch(input, query string, opts concept.SearchOptions) error {
	g, err := concept.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	nodes := concept.SearchNodes(g, query, opts)
	if len(nodes) == 0 {
		printInfo("No concepts match %q", query)
		return nil
	}

	printSuccess("Found %d concepts", len(nodes))
	for _, n := range nodes {
		title := n.Title
		if title == "" {
			title = n.ID
		}
		kind := string(n.Type)
		if kind == "" {
			kind = "—"
		}
		printDetail("%s (%s, %s)", title, n.ID, kind)
	}
	return nil
}
