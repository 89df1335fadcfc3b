package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/types"
)

// Risk is a registered risk. Probability and impact are kept as received so
// that the matrix classifier can reject labels it does not recognize.
type Risk struct {
	ID          int64              `json:"id,omitempty"`
	Title       string             `json:"titulo"`
	Description string             `json:"descricao"`
	Category    types.RiskCategory `json:"categoria"`
	Probability types.Probability  `json:"probabilidade"`
	Impact      types.Impact       `json:"impacto"`
	Status      types.RiskStatus   `json:"status"`
}

// NewRisk builds a validated create request
func NewRisk(title, description string, category types.RiskCategory, probability types.Probability, impact types.Impact, status types.RiskStatus) (*Risk, error) {
	risk := &Risk{
		Title:       title,
		Description: description,
		Category:    category,
		Probability: probability,
		Impact:      impact,
		Status:      status,
	}
	if err := risk.Validate(); err != nil {
		return nil, err
	}
	return risk, nil
}

// Validate checks the risk against the data model invariants
func (r *Risk) Validate() error {
	if r.Title == "" {
		return goerr.Wrap(ErrDomain, "risk title is required", goerr.V(ColumnKey, "titulo"))
	}
	if !r.Category.IsValid() {
		return goerr.Wrap(ErrDomain, "invalid risk category",
			goerr.V(ColumnKey, "categoria"), goerr.V(ValueKey, r.Category))
	}
	if _, err := r.Probability.Level(); err != nil {
		return goerr.Wrap(ErrDomain, "invalid risk probability",
			goerr.V(ColumnKey, "probabilidade"), goerr.V(ValueKey, r.Probability))
	}
	if _, err := r.Impact.Level(); err != nil {
		return goerr.Wrap(ErrDomain, "invalid risk impact",
			goerr.V(ColumnKey, "impacto"), goerr.V(ValueKey, r.Impact))
	}
	if !r.Status.IsValid() {
		return goerr.Wrap(ErrDomain, "invalid risk status",
			goerr.V(ColumnKey, "status"), goerr.V(ValueKey, r.Status))
	}
	return nil
}
