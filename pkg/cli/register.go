package cli

import (
	"context"
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/types"
	"github.com/secmon-lab/auditai/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// fieldFlag binds a string flag to a record column
type fieldFlag struct {
	column string
	flag   *cli.StringFlag
}

func stringField(column, name, usage string, required bool) fieldFlag {
	return fieldFlag{
		column: column,
		flag:   &cli.StringFlag{Name: name, Usage: usage, Required: required},
	}
}

func cmdRegister(g *global) *cli.Command {
	now := func() string { return time.Now().UTC().Format(time.RFC3339) }

	transaction := []fieldFlag{
		stringField("cliente", "client", "Client name", true),
		stringField("valor_transacao", "amount", "Transaction amount", true),
		stringField("data", "date", "Transaction date (default: now)", false),
		stringField("status", "status", "Status [Aprovado|Pendente|Rejeitado]", true),
		stringField("justificativa", "justification", "Justification", false),
	}
	risk := []fieldFlag{
		stringField("titulo", "title", "Risk title", true),
		stringField("descricao", "description", "Risk description", true),
		stringField("categoria", "category", "Category [Financeiro|Operacional|Legal|Tecnologia]", true),
		stringField("probabilidade", "probability", "Probability [Baixa|Média|Alta]", true),
		stringField("impacto", "impact", "Impact [Baixo|Médio|Alto]", true),
		stringField("status", "status", "Status [Aberto|Mitigado|Fechado] (default: Aberto)", false),
	}
	control := []fieldFlag{
		stringField("id_risco", "risk-id", "ID of the risk this control mitigates", true),
		stringField("nome", "name", "Control name", true),
		stringField("tipo", "type", "Type [Preventivo|Detectivo|Corretivo]", true),
		stringField("descricao", "description", "Control description", true),
		stringField("eficacia", "effectiveness", "Effectiveness [Baixa|Média|Alta]", true),
		stringField("responsavel", "responsible", "Owner", true),
		stringField("ativo", "active", "Whether the control is active (default: true)", false),
		stringField("data_criacao", "created-at", "Creation time (default: now)", false),
	}

	defaults := map[types.EntityKind]fieldDefaults{
		types.EntityKindTransaction: {"data": now},
		types.EntityKindRisk:        {"status": func() string { return "Aberto" }},
		types.EntityKindControl: {
			"ativo":        func() string { return "true" },
			"data_criacao": now,
		},
	}

	return &cli.Command{
		Name:    "register",
		Aliases: []string{"r"},
		Usage:   "Register a single record",
		Commands: []*cli.Command{
			registerCommand(g, types.EntityKindTransaction, "Register a transaction for audit", transaction, defaults[types.EntityKindTransaction]),
			registerCommand(g, types.EntityKindRisk, "Register a risk", risk, defaults[types.EntityKindRisk]),
			registerCommand(g, types.EntityKindControl, "Register a control for an existing risk", control, defaults[types.EntityKindControl]),
		},
	}
}

// fieldDefaults supplies values for columns left unset on the command line
type fieldDefaults map[string]func() string

func registerCommand(g *global, kind types.EntityKind, usage string, fields []fieldFlag, defaults fieldDefaults) *cli.Command {
	flags := make([]cli.Flag, 0, len(fields))
	for _, f := range fields {
		flags = append(flags, f.flag)
	}

	return &cli.Command{
		Name:  kind.String(),
		Usage: usage,
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			record := usecase.Fields{}
			for _, f := range fields {
				switch {
				case c.IsSet(f.flag.Name):
					record[f.column] = c.String(f.flag.Name)
				case defaults[f.column] != nil:
					record[f.column] = defaults[f.column]()
				}
			}

			uc, client, err := g.setup(c)
			if err != nil {
				return err
			}
			ctx = withSession(ctx, client)

			created, err := uc.Register.Create(ctx, kind, record)
			if err != nil {
				return goerr.Wrap(err, "failed to register "+kind.String())
			}

			out, err := json.MarshalIndent(created, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to encode created record")
			}
			_, err = c.Root().Writer.Write(append(out, '\n'))
			return err
		},
	}
}
