package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/model"
	"github.com/secmon-lab/auditai/pkg/domain/types"
)

// Fields holds raw column values of one record, as read from a CSV row
// or a registration form.
type Fields map[string]string

func (f Fields) get(column string) string {
	return strings.TrimSpace(f[column])
}

var requiredColumns = map[types.EntityKind][]string{
	types.EntityKindTransaction: {"cliente", "valor_transacao", "data", "status"},
	types.EntityKindRisk:        {"titulo", "descricao", "categoria", "probabilidade", "impacto", "status"},
	types.EntityKindControl:     {"id_risco", "nome", "tipo", "descricao", "eficacia", "responsavel", "ativo", "data_criacao"},
}

// RequiredColumns returns the columns a CSV batch of kind must carry
func RequiredColumns(kind types.EntityKind) []string {
	return append([]string(nil), requiredColumns[kind]...)
}

type rowParser struct {
	location *time.Location
}

func invalidColumn(column string, err error) error {
	return goerr.Wrap(err, "invalid "+column, goerr.V(model.ColumnKey, column))
}

func unrecognized(column, raw string, err error) error {
	return goerr.Wrap(model.ErrDomain, fmt.Sprintf("unrecognized %s %q", column, raw),
		goerr.V(model.ColumnKey, column),
		goerr.V(model.ValueKey, raw),
		goerr.V(model.CauseKey, err.Error()),
	)
}

func (p *rowParser) transaction(f Fields) (*model.Transaction, error) {
	amount, err := model.ParseAmount(f.get("valor_transacao"))
	if err != nil {
		return nil, invalidColumn("valor_transacao", err)
	}
	date, err := model.ParseTimestamp(f.get("data"), p.location)
	if err != nil {
		return nil, invalidColumn("data", err)
	}
	status, err := types.ParseTransactionStatus(f.get("status"))
	if err != nil {
		return nil, unrecognized("status", f.get("status"), err)
	}

	return model.NewTransaction(f.get("cliente"), amount, date, status, f.get("justificativa"))
}

func (p *rowParser) risk(f Fields) (*model.Risk, error) {
	category, err := types.ParseRiskCategory(f.get("categoria"))
	if err != nil {
		return nil, unrecognized("categoria", f.get("categoria"), err)
	}
	probability, err := types.ParseProbability(f.get("probabilidade"))
	if err != nil {
		return nil, unrecognized("probabilidade", f.get("probabilidade"), err)
	}
	impact, err := types.ParseImpact(f.get("impacto"))
	if err != nil {
		return nil, unrecognized("impacto", f.get("impacto"), err)
	}
	status, err := types.ParseRiskStatus(f.get("status"))
	if err != nil {
		return nil, unrecognized("status", f.get("status"), err)
	}

	return model.NewRisk(f.get("titulo"), f.get("descricao"), category, probability, impact, status)
}

func (p *rowParser) control(f Fields) (*model.Control, error) {
	riskID, err := model.ParseID(f.get("id_risco"))
	if err != nil {
		return nil, invalidColumn("id_risco", err)
	}
	controlType, err := types.ParseControlType(f.get("tipo"))
	if err != nil {
		return nil, unrecognized("tipo", f.get("tipo"), err)
	}
	effectiveness, err := types.ParseEffectiveness(f.get("eficacia"))
	if err != nil {
		return nil, unrecognized("eficacia", f.get("eficacia"), err)
	}
	createdAt, err := model.ParseTimestamp(f.get("data_criacao"), p.location)
	if err != nil {
		return nil, invalidColumn("data_criacao", err)
	}

	return model.NewControl(riskID, f.get("nome"), controlType, f.get("descricao"), effectiveness,
		f.get("responsavel"), model.ParseBool(f.get("ativo")), createdAt)
}
