package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/model"
	"github.com/secmon-lab/auditai/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

var tierColors = map[types.Tier]*color.Color{
	types.TierLow:    color.New(color.FgGreen),
	types.TierMedium: color.New(color.FgHiYellow), // closest terminal colour to orange
	types.TierHigh:   color.New(color.FgRed, color.Bold),
}

func paintTier(t types.Tier) string {
	if c, ok := tierColors[t]; ok {
		return c.Sprint(t.String())
	}
	return t.String()
}

func cmdMatrix(g *global) *cli.Command {
	var noColor bool

	return &cli.Command{
		Name:    "matrix",
		Aliases: []string{"m"},
		Usage:   "Classify registered risks on the probability/impact matrix",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable tier colours",
				Destination: &noColor,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if noColor {
				color.NoColor = true
			}

			uc, client, err := g.setup(c)
			if err != nil {
				return err
			}
			ctx = withSession(ctx, client)

			m, err := uc.Matrix.Build(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to build risk matrix")
			}
			return printMatrix(c.Root().Writer, m)
		},
	}
}

func printMatrix(w io.Writer, m *model.RiskMatrix) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPROBABILITY\tIMPACT\tTIER")
	for _, p := range m.Points {
		fmt.Fprintf(tw, "%d\t%s\t%s (%d)\t%s (%d)\t%s\n",
			p.Risk.ID, p.Risk.Title,
			p.Risk.Probability, p.ProbabilityScore,
			p.Risk.Impact, p.ImpactScore,
			paintTier(p.Tier),
		)
	}
	if err := tw.Flush(); err != nil {
		return goerr.Wrap(err, "failed to write matrix")
	}

	// Grid rows run from high to low probability, like the plotted matrix
	fmt.Fprintln(w)
	fmt.Fprintln(w, "probability \\ impact   1   2   3")
	for p := 3; p >= 1; p-- {
		fmt.Fprintf(w, "%21d", p)
		for i := 1; i <= 3; i++ {
			fmt.Fprintf(w, " %3s", paintCount(m.Grid[p-1][i-1], types.TierOf(p, i)))
		}
		fmt.Fprintln(w)
	}

	counts := m.CountByTier()
	fmt.Fprintln(w)
	for _, t := range types.AllTiers() {
		fmt.Fprintf(w, "%s: %d  ", paintTier(t), counts[t])
	}
	fmt.Fprintln(w)

	if len(m.Rejected) > 0 {
		fmt.Fprintf(w, "\n%d risk(s) not classified:\n", len(m.Rejected))
		for _, r := range m.Rejected {
			fmt.Fprintf(w, "  #%d %s: %s\n", r.Risk.ID, r.Risk.Title, r.Reason)
		}
	}
	return nil
}

func paintCount(n int, t types.Tier) string {
	s := fmt.Sprintf("%3d", n)
	if c, ok := tierColors[t]; ok && n > 0 {
		return c.Sprint(s)
	}
	return s
}
