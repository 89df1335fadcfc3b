package cli

import (
	"bytes"
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/types"
	"github.com/secmon-lab/auditai/pkg/service/storage"
	"github.com/secmon-lab/auditai/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdExport(g *global) *cli.Command {
	var collectionName string
	var output string
	var gcsEndpoint string

	return &cli.Command{
		Name:    "export",
		Aliases: []string{"e"},
		Usage:   "Export a collection as CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "collection",
				Usage:       "Collection [transactions|audits|risks|controls|feedbacks]",
				Required:    true,
				Destination: &collectionName,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Destination: file path, - for stdout, or gs://bucket/object",
				Value:       "-",
				Destination: &output,
			},
			&cli.StringFlag{
				Name:        "gcs-endpoint",
				Usage:       "Alternative Cloud Storage endpoint (emulator)",
				Sources:     cli.EnvVars("AUDITAI_GCS_ENDPOINT"),
				Destination: &gcsEndpoint,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			collection, err := types.ParseCollection(collectionName)
			if err != nil {
				return err
			}

			uc, client, err := g.setup(c)
			if err != nil {
				return err
			}
			ctx = withSession(ctx, client)

			// the destination is untouched unless the whole export succeeds
			var buf bytes.Buffer
			n, err := uc.Report.Export(ctx, collection, &buf)
			if err != nil {
				return goerr.Wrap(err, "failed to export", goerr.V("collection", collection))
			}

			opener := storage.NewOpener(
				storage.WithStdout(c.Root().Writer),
				storage.WithGCSEndpoint(gcsEndpoint),
			)
			if err := opener.Put(ctx, output, buf.Bytes()); err != nil {
				return err
			}

			logging.From(ctx).Info("collection exported",
				"collection", collection,
				"rows", n,
				"output", output,
			)
			return nil
		},
	}
}
