package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/interfaces"
	"github.com/secmon-lab/auditai/pkg/domain/model"
	"github.com/secmon-lab/auditai/pkg/domain/types"
	"github.com/secmon-lab/auditai/pkg/utils/logging"
)

type FeedbackUseCase struct {
	api interfaces.AuditAPI
}

func NewFeedbackUseCase(api interfaces.AuditAPI) *FeedbackUseCase {
	return &FeedbackUseCase{api: api}
}

// Submit labels an audited transaction. label is matched like any other
// enumeration (case and accents ignored).
func (uc *FeedbackUseCase) Submit(ctx context.Context, transactionID int64, label, observation string) (*model.FeedbackRequest, error) {
	parsed, err := types.ParseFeedbackLabel(label)
	if err != nil {
		return nil, unrecognized("rotulo", label, err)
	}

	req, err := model.NewFeedbackRequest(transactionID, parsed, observation)
	if err != nil {
		return nil, err
	}

	if err := uc.api.LabelTransaction(ctx, req); err != nil {
		return nil, goerr.Wrap(err, "failed to label transaction", goerr.V("transaction_id", transactionID))
	}

	session := sessionFrom(ctx, uc.api)
	session.Invalidate(model.EndpointFeedbacks)
	session.Invalidate(model.EndpointAudits)

	logging.From(ctx).Info("feedback submitted",
		slog.Int64("transaction_id", transactionID),
		slog.String("label", parsed.String()),
	)
	return req, nil
}
