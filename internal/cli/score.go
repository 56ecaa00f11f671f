package cli

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/errors"
	"github.com/knomap/knomap/pkg/scoring"
)

// scoreCommand creates the score command for relevance ranking.
func (c *CLI) scoreCommand() *cobra.Command {
	var (
		limit   int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "score [graph.json] [root]",
		Short: "Rank every concept against a root",
		Long: `Rank every concept against a root.

Each concept gets a combined relevance score built from graph distance,
type compatibility, keyword overlap, edge strength, and importance.
Lower combined scores mean closer to the root.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScore(cmd, args[0], args[1], limit, noCache)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the top N concepts (0 = all)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runScore(cmd *cobra.Command, input, rootID string, limit int, noCache bool) error {
	if err := errors.ValidateNodeID(rootID); err != nil {
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
	scores, err := runner.Scores(cmd.Context(), g, rootID)
	if err != nil {
		return fmt.Errorf("score concepts: %w", err)
	}
	prog.done("Concepts scored")
	if len(scores) == 0 {
		return errors.New(errors.ErrCodeNodeNotFound, "root concept not found: %s", rootID)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Combined < scores[j].Combined
	})
	if limit > 0 && limit < len(scores) {
		scores = scores[:limit]
	}

	fmt.Println(renderScoreTable(scores))
	return nil
}

// renderScoreTable renders scores as a bordered table, closest first.
func renderScoreTable(scores []scoring.Score) string {
	rows := make([][]string, len(scores))
	for i, s := range scores {
		dist := fmt.Sprintf("%d", s.Directness)
		if s.Directness == scoring.UnreachableDistance {
			dist = "—"
		}
		rows[i] = []string{
			s.NodeID,
			dist,
			fmt.Sprintf("%d", s.Level),
			fmt.Sprintf("%.3f", s.Combined),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Concept", "Hops", "Level", "Score").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleValue
			}
			return StyleNumber
		}).
		Render()
}
