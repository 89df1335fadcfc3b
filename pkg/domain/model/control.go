package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/types"
)

// Control is a mitigation attached to a risk through RiskID
type Control struct {
	ID            int64               `json:"id,omitempty"`
	RiskID        int64               `json:"id_risco"`
	Name          string              `json:"nome"`
	Type          types.ControlType   `json:"tipo"`
	Description   string              `json:"descricao"`
	Effectiveness types.Effectiveness `json:"eficacia"`
	Responsible   string              `json:"responsavel"`
	Active        bool                `json:"ativo"`
	CreatedAt     Timestamp           `json:"data_criacao"`
}

// NewControl builds a validated create request
func NewControl(riskID int64, name string, controlType types.ControlType, description string, effectiveness types.Effectiveness, responsible string, active bool, createdAt time.Time) (*Control, error) {
	ctrl := &Control{
		RiskID:        riskID,
		Name:          name,
		Type:          controlType,
		Description:   description,
		Effectiveness: effectiveness,
		Responsible:   responsible,
		Active:        active,
		CreatedAt:     NewTimestamp(createdAt.UTC()),
	}
	if err := ctrl.Validate(); err != nil {
		return nil, err
	}
	return ctrl, nil
}

// Validate checks the control against the data model invariants.
// Whether RiskID references an existing risk is checked by the caller.
func (c *Control) Validate() error {
	if c.RiskID <= 0 {
		return goerr.Wrap(ErrDomain, "control must reference a risk",
			goerr.V(ColumnKey, "id_risco"), goerr.V(ValueKey, c.RiskID))
	}
	if c.Name == "" {
		return goerr.Wrap(ErrDomain, "control name is required", goerr.V(ColumnKey, "nome"))
	}
	if !c.Type.IsValid() {
		return goerr.Wrap(ErrDomain, "invalid control type",
			goerr.V(ColumnKey, "tipo"), goerr.V(ValueKey, c.Type))
	}
	switch c.Effectiveness {
	case types.EffectivenessHigh, types.EffectivenessMedium, types.EffectivenessLow:
	default:
		return goerr.Wrap(ErrDomain, "invalid control effectiveness",
			goerr.V(ColumnKey, "eficacia"), goerr.V(ValueKey, c.Effectiveness))
	}
	if c.CreatedAt.IsZero() {
		return goerr.Wrap(ErrDomain, "control creation date is required", goerr.V(ColumnKey, "data_criacao"))
	}
	return nil
}
