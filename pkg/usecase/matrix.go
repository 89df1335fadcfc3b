package usecase

import (
	"context"
	"log/slog"

	"github.com/secmon-lab/auditai/pkg/domain/interfaces"
	"github.com/secmon-lab/auditai/pkg/domain/model"
	"github.com/secmon-lab/auditai/pkg/domain/types"
	"github.com/secmon-lab/auditai/pkg/utils/logging"
)

type MatrixUseCase struct {
	api interfaces.AuditAPI
}

func NewMatrixUseCase(api interfaces.AuditAPI) *MatrixUseCase {
	return &MatrixUseCase{api: api}
}

// Build classifies every registered risk. Risks with unrecognized labels
// are returned in Rejected and never receive a default score.
func (uc *MatrixUseCase) Build(ctx context.Context) (*model.RiskMatrix, error) {
	risks, err := loadCollection[model.Risk](ctx, uc.api, types.CollectionRisks)
	if err != nil {
		return nil, err
	}

	matrix := model.ClassifyRisks(risks)
	for _, r := range matrix.Rejected {
		logging.From(ctx).Warn("risk not classified",
			slog.Int64("risk_id", r.Risk.ID),
			slog.String("reason", r.Reason),
		)
	}
	return matrix, nil
}
