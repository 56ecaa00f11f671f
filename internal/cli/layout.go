package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/errors"
	"github.com/knomap/knomap/pkg/layout"
	"github.com/knomap/knomap/pkg/pipeline"
)

// layoutCommand creates the layout command for positioning concept graphs.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := c.baseOptions()

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute canvas positions for a concept graph",
		Long: `Compute canvas positions for a concept graph.

The layout command takes a graph.json file and positions every node on the
canvas using the selected strategy. The output is a graph.json file with
positions filled in, plus the viewport that fits it on screen.

The radial, intelligent, and hierarchy strategies are anchored at a root
concept. Pass one with --root, or run interactively to pick one from a list.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even on a cache hit")

	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", opts.Strategy, "layout strategy: force, radial, intelligent, hierarchy")
	cmd.Flags().StringVarP(&opts.RootID, "root", "r", "", "root concept for rooted strategies")
	cmd.Flags().BoolVar(&opts.AllowDefaultRoot, "allow-default-root", false, "fall back to a default root when none is given")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height")
	cmd.Flags().Float64Var(&opts.NodeSpacing, "spacing", 0, "node spacing")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "force simulation iterations")
	cmd.Flags().Float64Var(&opts.ForceStrength, "force-strength", 0, "force simulation strength")
	cmd.Flags().Float64Var(&opts.Radius, "radius", 0, "radial ring spacing")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed for reproducible layouts")
	cmd.Flags().BoolVar(&opts.SkipOverlaps, "skip-overlaps", false, "skip overlap resolution")

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(cmd *cobra.Command, input string, opts pipeline.Options, output string, noCache bool) error {
	ctx := cmd.Context()

	if output != "" {
		if err := errors.ValidatePath(output); err != nil {
			return err
		}
	}

	g, err := concept.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	if opts.RootID == "" && !opts.AllowDefaultRoot && needsRoot(opts.Strategy) {
		rootID, picked, err := pickRoot(g)
		if err != nil {
			return err
		}
		if !picked {
			return errors.New(errors.ErrCodeRootRequired,
				"strategy %q needs a root concept; pass --root or --allow-default-root", opts.Strategy)
		}
		opts.RootID = rootID
	}

	runner, err := c.newRunner(cmd, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := c.computeLayout(ctx, runner, g, opts)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := concept.WriteGraphFile(result.Graph, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)
	printDetail("zoom %.2f  pan (%.0f, %.0f)", result.View.Zoom, result.View.PanX, result.View.PanY)
	printNewline()
	printNextStep("Score against the root", appName+" score "+outputPath+" "+opts.RootID)

	return nil
}

// computeLayout runs the pipeline behind a spinner.
func (c *CLI) computeLayout(ctx context.Context, runner *pipeline.Runner, g concept.Graph, opts pipeline.Options) (*pipeline.Result, error) {
	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Strategy))
	spinner.Start()

	result, err := runner.ApplyLayout(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return nil, fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	return result, nil
}

// needsRoot reports whether a strategy is anchored at a root concept.
func needsRoot(strategy string) bool {
	switch layout.Strategy(strategy) {
	case layout.Radial, layout.IntelligentRadial, layout.LinearHierarchy:
		return true
	}
	return false
}

// pickRoot opens the interactive root picker when attached to a TTY.
// The second return is false when no selection was possible or made.
func pickRoot(g concept.Graph) (string, bool, error) {
	if len(g.Nodes) == 0 || !isatty.IsTerminal(stdinFd()) {
		return "", false, nil
	}
	return runRootPicker(g)
}
