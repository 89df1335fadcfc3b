package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/auditai/pkg/domain/model"
	"github.com/secmon-lab/auditai/pkg/domain/types"
	"github.com/secmon-lab/auditai/pkg/repository/cache"
	"github.com/secmon-lab/auditai/pkg/usecase"
)

func TestFeedbackUseCase_Submit(t *testing.T) {
	api := newFakeAPI()
	uc := usecase.New(api)
	ctx := cache.With(context.Background(), cache.New(api))

	before, err := uc.Report.Feedbacks(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, before).Length(0)

	req, err := uc.Feedback.Submit(ctx, 7, "VIOLAÇÃO_CONFIRMADA", "revisado")
	gt.NoError(t, err).Required()
	gt.Value(t, req.Label).Equal(types.FeedbackLabelConfirmedViolation)

	after, err := uc.Report.Feedbacks(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, after).Length(1).Required()
	gt.Value(t, after[0].TransactionID).Equal(int64(7))
}

func TestFeedbackUseCase_SubmitInvalid(t *testing.T) {
	api := newFakeAPI()
	uc := usecase.New(api)

	_, err := uc.Feedback.Submit(context.Background(), 7, "talvez", "")
	gt.Error(t, err).Is(model.ErrDomain)

	_, err = uc.Feedback.Submit(context.Background(), 0, "falso_positivo", "")
	gt.Error(t, err).Is(model.ErrDomain)

	gt.Value(t, api.creates).Equal(0)
}
