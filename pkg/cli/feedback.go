package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func cmdFeedback(g *global) *cli.Command {
	var transactionID int64
	var label string
	var observation string

	return &cli.Command{
		Name:  "feedback",
		Usage: "Label an audited transaction",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "transaction-id",
				Aliases:     []string{"t"},
				Usage:       "Transaction ID",
				Required:    true,
				Destination: &transactionID,
			},
			&cli.StringFlag{
				Name:        "label",
				Usage:       "Label [violacao_confirmada|falso_positivo|nao_avaliado]",
				Required:    true,
				Destination: &label,
			},
			&cli.StringFlag{
				Name:        "observation",
				Usage:       "Free-text observation",
				Destination: &observation,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, client, err := g.setup(c)
			if err != nil {
				return err
			}
			ctx = withSession(ctx, client)

			req, err := uc.Feedback.Submit(ctx, transactionID, label, observation)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.Root().Writer, "transaction %d labelled %s\n", req.TransactionID, req.Label)
			return nil
		},
	}
}
