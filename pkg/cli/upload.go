package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/model"
	"github.com/secmon-lab/auditai/pkg/domain/types"
	"github.com/secmon-lab/auditai/pkg/usecase"
	"github.com/secmon-lab/auditai/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdUpload(g *global) *cli.Command {
	var kindName string
	var failuresOut string

	return &cli.Command{
		Name:      "upload",
		Aliases:   []string{"u"},
		Usage:     "Submit a CSV batch of transactions, risks or controls",
		ArgsUsage: "FILE (use - for stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "kind",
				Aliases:     []string{"k"},
				Usage:       "Entity kind [transaction|risk|control]",
				Required:    true,
				Destination: &kindName,
			},
			&cli.StringFlag{
				Name:        "failures-out",
				Usage:       "Write failed rows to this CSV file for correction and re-upload",
				Destination: &failuresOut,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			kind, err := types.ParseEntityKind(kindName)
			if err != nil {
				return err
			}
			if c.Args().Len() != 1 {
				return goerr.New("exactly one CSV file is required")
			}

			uc, client, err := g.setup(c)
			if err != nil {
				return err
			}
			ctx = withSession(ctx, client)

			var src io.Reader
			path := c.Args().First()
			if path == "-" {
				src = c.Root().Reader
				if src == nil {
					src = os.Stdin
				}
			} else {
				f, err := os.Open(filepath.Clean(path))
				if err != nil {
					return goerr.Wrap(err, "failed to open CSV file", goerr.V("path", path))
				}
				defer safe.Close(ctx, f)
				src = f
			}

			summary, err := uc.Ingest.Ingest(ctx, kind, src)
			if err != nil {
				return goerr.Wrap(err, "batch rejected", goerr.V("path", path))
			}

			if err := printSummary(c.Root().Writer, summary); err != nil {
				return err
			}

			if failuresOut != "" && len(summary.Failures) > 0 {
				f, err := os.Create(filepath.Clean(failuresOut))
				if err != nil {
					return goerr.Wrap(err, "failed to create failures file", goerr.V("path", failuresOut))
				}
				defer safe.Close(ctx, f)
				if err := usecase.WriteFailures(f, summary); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func printSummary(w io.Writer, s *model.BatchSummary) error {
	fmt.Fprintf(w, "%s: %d succeeded, %d failed", s.Kind, s.Succeeded, s.Failed)
	if s.Interrupted {
		fmt.Fprintf(w, ", %d skipped (interrupted)", s.Skipped)
	}
	fmt.Fprintln(w)

	if len(s.Failures) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tKIND\tREASON")
	for _, f := range s.Failures {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", f.Line, f.Kind, f.Reason)
	}
	if err := tw.Flush(); err != nil {
		return goerr.Wrap(err, "failed to write summary")
	}
	return nil
}
