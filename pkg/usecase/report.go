package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/interfaces"
	"github.com/secmon-lab/auditai/pkg/domain/model"
	"github.com/secmon-lab/auditai/pkg/domain/types"
)

// ReportUseCase reads collections from the audit API through the session cache
type ReportUseCase struct {
	api interfaces.AuditAPI
}

func NewReportUseCase(api interfaces.AuditAPI) *ReportUseCase {
	return &ReportUseCase{api: api}
}

func load[T any](ctx context.Context, api interfaces.Fetcher, endpoint, envelopeKey string) ([]T, error) {
	raw, err := sessionFrom(ctx, api).Get(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}
	list, err := decodeList[T](raw, envelopeKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode collection", goerr.V(model.EndpointKey, endpoint))
	}
	return list, nil
}

func loadCollection[T any](ctx context.Context, api interfaces.Fetcher, collection types.Collection) ([]T, error) {
	src := collectionSources[collection]
	return load[T](ctx, api, src.endpoint, src.envelope)
}

// Transactions returns the full report from /relatorio
func (uc *ReportUseCase) Transactions(ctx context.Context) ([]model.Transaction, error) {
	return loadCollection[model.Transaction](ctx, uc.api, types.CollectionTransactions)
}

// Audits returns transactions with their compliance violations
func (uc *ReportUseCase) Audits(ctx context.Context) ([]model.AuditResult, error) {
	return loadCollection[model.AuditResult](ctx, uc.api, types.CollectionAudits)
}

func (uc *ReportUseCase) Risks(ctx context.Context) ([]model.Risk, error) {
	return loadCollection[model.Risk](ctx, uc.api, types.CollectionRisks)
}

func (uc *ReportUseCase) Controls(ctx context.Context) ([]model.Control, error) {
	return loadCollection[model.Control](ctx, uc.api, types.CollectionControls)
}

func (uc *ReportUseCase) Feedbacks(ctx context.Context) ([]model.Feedback, error) {
	return loadCollection[model.Feedback](ctx, uc.api, types.CollectionFeedbacks)
}

// List returns the typed items of collection
func (uc *ReportUseCase) List(ctx context.Context, collection types.Collection) (any, error) {
	switch collection {
	case types.CollectionTransactions:
		return uc.Transactions(ctx)
	case types.CollectionAudits:
		return uc.Audits(ctx)
	case types.CollectionRisks:
		return uc.Risks(ctx)
	case types.CollectionControls:
		return uc.Controls(ctx)
	case types.CollectionFeedbacks:
		return uc.Feedbacks(ctx)
	default:
		return nil, goerr.Wrap(ErrUnknownCollection, "cannot list", goerr.V(CollectionKey, collection))
	}
}
