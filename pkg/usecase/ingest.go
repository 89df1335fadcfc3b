package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/interfaces"
	"github.com/secmon-lab/auditai/pkg/domain/model"
	"github.com/secmon-lab/auditai/pkg/domain/types"
	"github.com/secmon-lab/auditai/pkg/repository/cache"
	"github.com/secmon-lab/auditai/pkg/utils/csvtable"
	"github.com/secmon-lab/auditai/pkg/utils/logging"
	"golang.org/x/time/rate"
)

// Read endpoints whose content changes when a record of the kind is created
var invalidatedBy = map[types.EntityKind][]string{
	types.EntityKindTransaction: {model.EndpointReport, model.EndpointAudits},
	types.EntityKindRisk:        {model.EndpointRisks},
	types.EntityKindControl:     {model.EndpointControls},
}

// IngestUseCase submits CSV batches row by row
type IngestUseCase struct {
	api     interfaces.AuditAPI
	parser  *rowParser
	limiter *rate.Limiter
}

func NewIngestUseCase(api interfaces.AuditAPI, parser *rowParser, limiter *rate.Limiter) *IngestUseCase {
	return &IngestUseCase{
		api:     api,
		parser:  parser,
		limiter: limiter,
	}
}

// Ingest reads a CSV batch of kind from src and submits each row in order.
//
// A missing required column, a malformed header or an unreadable file
// rejects the whole batch before anything is sent. After that, a failing row is recorded in the
// summary and the next row is attempted; rows are never retried. When ctx
// is cancelled the row in flight completes and the remaining rows are
// counted as skipped.
func (uc *IngestUseCase) Ingest(ctx context.Context, kind types.EntityKind, src io.Reader) (*model.BatchSummary, error) {
	required, ok := requiredColumns[kind]
	if !ok {
		return nil, errUnknownKind(kind)
	}

	table, err := csvtable.Read(src)
	if err != nil {
		return nil, err
	}

	summary := &model.BatchSummary{
		Kind:     kind,
		Failures: []model.RowFailure{},
	}
	if table.Empty() {
		return summary, nil
	}

	if missing := table.Missing(required); len(missing) > 0 {
		return nil, goerr.Wrap(model.ErrSchemaMismatch, "missing required columns: "+strings.Join(missing, ", "),
			goerr.V(model.MissingColumnsKey, missing),
			goerr.V(KindKey, kind),
		)
	}

	logger := logging.From(ctx)
	session := sessionFrom(ctx, uc.api)

	var riskIDs map[int64]struct{}
	if kind == types.EntityKindControl {
		riskIDs = knownRiskIDs(ctx, session)
	}

	for i, row := range table.Rows {
		if err := uc.wait(ctx); err != nil {
			summary.Skipped = len(table.Rows) - i
			summary.Interrupted = true
			logger.Warn("batch interrupted",
				slog.String("kind", kind.String()),
				slog.Int("line", row.Line),
				slog.Int("skipped", summary.Skipped),
			)
			break
		}

		// The row in flight is not abandoned on cancellation
		rowCtx := context.WithoutCancel(ctx)
		err := row.Err
		if err == nil {
			err = uc.submit(rowCtx, kind, Fields(row.Values), riskIDs)
		}
		if err != nil {
			summary.AddFailure(row.Line, row.Values, err)
			logger.Info("row rejected",
				slog.String("kind", kind.String()),
				slog.Int("line", row.Line),
				slog.String("error_kind", model.KindOf(err)),
				slog.String("reason", err.Error()),
			)
			continue
		}
		summary.Succeeded++
	}

	if summary.Succeeded > 0 {
		for _, ep := range invalidatedBy[kind] {
			session.Invalidate(ep)
		}
	}

	logger.Info("batch ingested",
		slog.String("kind", kind.String()),
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("failed", summary.Failed),
		slog.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

func (uc *IngestUseCase) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if uc.limiter == nil {
		return nil
	}
	return uc.limiter.Wait(ctx)
}

func (uc *IngestUseCase) submit(ctx context.Context, kind types.EntityKind, f Fields, riskIDs map[int64]struct{}) error {
	switch kind {
	case types.EntityKindTransaction:
		tx, err := uc.parser.transaction(f)
		if err != nil {
			return err
		}
		_, err = uc.api.CreateTransaction(ctx, tx)
		return err

	case types.EntityKindRisk:
		risk, err := uc.parser.risk(f)
		if err != nil {
			return err
		}
		_, err = uc.api.CreateRisk(ctx, risk)
		return err

	case types.EntityKindControl:
		ctrl, err := uc.parser.control(f)
		if err != nil {
			return err
		}
		if err := checkRiskExists(riskIDs, ctrl.RiskID); err != nil {
			return err
		}
		_, err = uc.api.CreateControl(ctx, ctrl)
		return err
	}

	return errUnknownKind(kind)
}

// knownRiskIDs loads the registered risk identifiers. It returns nil when
// the list cannot be fetched, which disables the local check and leaves
// validation to the audit API.
func knownRiskIDs(ctx context.Context, session *cache.Session) map[int64]struct{} {
	raw, err := session.Get(ctx, model.EndpointRisks, nil)
	if err != nil {
		logging.From(ctx).Warn("risk list unavailable, skipping local id_risco check",
			slog.String("error", err.Error()))
		return nil
	}

	risks, err := decodeList[model.Risk](raw, "riscos")
	if err != nil {
		logging.From(ctx).Warn("risk list unreadable, skipping local id_risco check",
			slog.String("error", err.Error()))
		return nil
	}

	ids := make(map[int64]struct{}, len(risks))
	for _, r := range risks {
		ids[r.ID] = struct{}{}
	}
	return ids
}

func checkRiskExists(riskIDs map[int64]struct{}, id int64) error {
	if riskIDs == nil {
		return nil
	}
	if _, ok := riskIDs[id]; !ok {
		return goerr.Wrap(model.ErrDomain, "id_risco does not reference a registered risk",
			goerr.V(model.ColumnKey, "id_risco"),
			goerr.V(model.ValueKey, id),
			goerr.V(model.RiskIDKey, id),
		)
	}
	return nil
}

// decodeList accepts either a bare JSON array or an object wrapping the
// array under envelopeKey.
func decodeList[T any](raw json.RawMessage, envelopeKey string) ([]T, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var list []T
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, goerr.Wrap(model.ErrAPI, "unexpected list shape", goerr.V(model.CauseKey, err.Error()))
		}
		return list, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, goerr.Wrap(model.ErrAPI, "unexpected list shape", goerr.V(model.CauseKey, err.Error()))
	}
	inner, ok := envelope[envelopeKey]
	if !ok || string(inner) == "null" {
		return []T{}, nil
	}
	var list []T
	if err := json.Unmarshal(inner, &list); err != nil {
		return nil, goerr.Wrap(model.ErrAPI, "unexpected list shape",
			goerr.V("envelope", envelopeKey), goerr.V(model.CauseKey, err.Error()))
	}
	return list, nil
}
