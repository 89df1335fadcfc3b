package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/model"
	"github.com/secmon-lab/auditai/pkg/domain/types"
	"github.com/secmon-lab/auditai/pkg/repository/cache"
	"github.com/secmon-lab/auditai/pkg/utils/csvtable"
)

var (
	transactionColumns = []string{"id", "cliente", "valor_transacao", "data", "status", "justificativa"}
	riskColumns        = []string{"id", "titulo", "descricao", "categoria", "probabilidade", "impacto", "status"}
	controlColumns     = []string{"id", "id_risco", "nome", "tipo", "descricao", "eficacia", "responsavel", "ativo", "data_criacao"}
	feedbackColumns    = []string{"id_transacao", "rotulo", "observacao", "data_registro"}
	auditColumns       = append(append([]string{}, transactionColumns...), "violacoes", "descricoes")
)

// ExportColumns returns the CSV header used when exporting collection
func ExportColumns(collection types.Collection) []string {
	switch collection {
	case types.CollectionTransactions:
		return append([]string(nil), transactionColumns...)
	case types.CollectionAudits:
		return append([]string(nil), auditColumns...)
	case types.CollectionRisks:
		return append([]string(nil), riskColumns...)
	case types.CollectionControls:
		return append([]string(nil), controlColumns...)
	case types.CollectionFeedbacks:
		return append([]string(nil), feedbackColumns...)
	default:
		return nil
	}
}

// collectionSource locates a collection on the audit API. consumed lists
// JSON keys folded into derived columns rather than exported by name.
type collectionSource struct {
	endpoint string
	envelope string
	consumed []string
}

var collectionSources = map[types.Collection]collectionSource{
	types.CollectionTransactions: {endpoint: model.EndpointReport, envelope: "transacoes"},
	types.CollectionAudits:       {endpoint: model.EndpointAudits, envelope: "auditorias", consumed: []string{"violacoes_compliance"}},
	types.CollectionRisks:        {endpoint: model.EndpointRisks, envelope: "riscos"},
	types.CollectionControls:     {endpoint: model.EndpointControls, envelope: "controles"},
	types.CollectionFeedbacks:    {endpoint: model.EndpointFeedbacks, envelope: "feedbacks"},
}

// Export writes collection to w as CSV. The known columns come first and
// any other field returned by the API follows in name order. Exported
// transactions, risks and controls can be uploaded again as-is.
func (uc *ReportUseCase) Export(ctx context.Context, collection types.Collection, w io.Writer) (int, error) {
	src, ok := collectionSources[collection]
	if !ok {
		return 0, goerr.Wrap(ErrUnknownCollection, "cannot export", goerr.V(CollectionKey, collection))
	}
	// typed and raw views must come from one response
	if cache.From(ctx) == nil {
		ctx = cache.With(ctx, cache.New(uc.api))
	}

	var rows [][]string

	switch collection {
	case types.CollectionTransactions:
		list, err := uc.Transactions(ctx)
		if err != nil {
			return 0, err
		}
		for _, tx := range list {
			rows = append(rows, transactionRow(tx))
		}

	case types.CollectionAudits:
		list, err := uc.Audits(ctx)
		if err != nil {
			return 0, err
		}
		for _, a := range list {
			descriptions := make([]string, 0, len(a.Violations))
			for _, v := range a.Violations {
				descriptions = append(descriptions, v.Description)
			}
			row := transactionRow(a.Transaction)
			row = append(row, strconv.Itoa(len(a.Violations)), strings.Join(descriptions, "; "))
			rows = append(rows, row)
		}

	case types.CollectionRisks:
		list, err := uc.Risks(ctx)
		if err != nil {
			return 0, err
		}
		for _, r := range list {
			rows = append(rows, []string{
				formatID(r.ID), r.Title, r.Description, r.Category.String(),
				string(r.Probability), string(r.Impact), r.Status.String(),
			})
		}

	case types.CollectionControls:
		list, err := uc.Controls(ctx)
		if err != nil {
			return 0, err
		}
		for _, c := range list {
			rows = append(rows, []string{
				formatID(c.ID), formatID(c.RiskID), c.Name, c.Type.String(), c.Description,
				string(c.Effectiveness), c.Responsible, strconv.FormatBool(c.Active), c.CreatedAt.String(),
			})
		}

	case types.CollectionFeedbacks:
		list, err := uc.Feedbacks(ctx)
		if err != nil {
			return 0, err
		}
		for _, f := range list {
			rows = append(rows, []string{
				formatID(f.TransactionID), f.Label.String(), f.Observation, f.RegisteredAt.String(),
			})
		}
	}

	columns := ExportColumns(collection)

	items, err := load[map[string]json.RawMessage](ctx, uc.api, src.endpoint, src.envelope)
	if err != nil {
		return 0, err
	}
	if extras := extraColumns(items, append(append([]string{}, columns...), src.consumed...)); len(extras) > 0 && len(items) == len(rows) {
		columns = append(columns, extras...)
		for i := range rows {
			for _, key := range extras {
				rows[i] = append(rows[i], rawCell(items[i][key]))
			}
		}
	}

	if err := csvtable.Write(w, columns, rows); err != nil {
		return 0, goerr.Wrap(err, "failed to export collection", goerr.V(CollectionKey, collection))
	}
	return len(rows), nil
}

// extraColumns returns the keys of items not in known, sorted
func extraColumns(items []map[string]json.RawMessage, known []string) []string {
	skip := make(map[string]struct{}, len(known))
	for _, k := range known {
		skip[k] = struct{}{}
	}

	seen := map[string]struct{}{}
	var extras []string
	for _, item := range items {
		for key := range item {
			if _, ok := skip[key]; ok {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	return extras
}

// rawCell renders a JSON value as a CSV cell: strings unquoted, null and
// absent as empty, anything else as compact JSON.
func rawCell(v json.RawMessage) string {
	trimmed := bytes.TrimSpace(v)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}
	return buf.String()
}

func transactionRow(tx model.Transaction) []string {
	return []string{
		formatID(tx.ID), tx.Client, tx.Amount.String(), tx.Date.String(), tx.Status.String(), tx.Justification,
	}
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
