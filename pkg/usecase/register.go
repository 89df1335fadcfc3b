package usecase

import (
	"context"
	"log/slog"

	"github.com/secmon-lab/auditai/pkg/domain/interfaces"
	"github.com/secmon-lab/auditai/pkg/domain/model"
	"github.com/secmon-lab/auditai/pkg/domain/types"
	"github.com/secmon-lab/auditai/pkg/utils/logging"
)

// RegisterUseCase creates single records from form input. Values go
// through the same coercion and validation as batch rows.
type RegisterUseCase struct {
	api    interfaces.AuditAPI
	parser *rowParser
}

func NewRegisterUseCase(api interfaces.AuditAPI, parser *rowParser) *RegisterUseCase {
	return &RegisterUseCase{api: api, parser: parser}
}

func (uc *RegisterUseCase) invalidate(ctx context.Context, kind types.EntityKind) {
	session := sessionFrom(ctx, uc.api)
	for _, ep := range invalidatedBy[kind] {
		session.Invalidate(ep)
	}
}

func (uc *RegisterUseCase) Transaction(ctx context.Context, f Fields) (*model.Transaction, error) {
	tx, err := uc.parser.transaction(f)
	if err != nil {
		return nil, err
	}
	created, err := uc.api.CreateTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, types.EntityKindTransaction)

	logging.From(ctx).Info("transaction registered", slog.Int64("id", created.ID), slog.String("client", created.Client))
	return created, nil
}

func (uc *RegisterUseCase) Risk(ctx context.Context, f Fields) (*model.Risk, error) {
	risk, err := uc.parser.risk(f)
	if err != nil {
		return nil, err
	}
	created, err := uc.api.CreateRisk(ctx, risk)
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, types.EntityKindRisk)

	logging.From(ctx).Info("risk registered", slog.Int64("id", created.ID), slog.String("title", created.Title))
	return created, nil
}

// Control registers a control. The referenced risk is checked against
// /riscos when that list is available.
func (uc *RegisterUseCase) Control(ctx context.Context, f Fields) (*model.Control, error) {
	ctrl, err := uc.parser.control(f)
	if err != nil {
		return nil, err
	}
	if err := checkRiskExists(knownRiskIDs(ctx, sessionFrom(ctx, uc.api)), ctrl.RiskID); err != nil {
		return nil, err
	}
	created, err := uc.api.CreateControl(ctx, ctrl)
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, types.EntityKindControl)

	logging.From(ctx).Info("control registered", slog.Int64("id", created.ID), slog.Int64("risk_id", created.RiskID))
	return created, nil
}

// Create dispatches on kind
func (uc *RegisterUseCase) Create(ctx context.Context, kind types.EntityKind, f Fields) (any, error) {
	switch kind {
	case types.EntityKindTransaction:
		return uc.Transaction(ctx, f)
	case types.EntityKindRisk:
		return uc.Risk(ctx, f)
	case types.EntityKindControl:
		return uc.Control(ctx, f)
	default:
		return nil, errUnknownKind(kind)
	}
}
