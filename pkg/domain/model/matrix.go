package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/types"
)

// MatrixPoint is a classified risk, ready to plot
type MatrixPoint struct {
	Risk             Risk       `json:"risk"`
	ProbabilityScore int        `json:"probability_score"`
	ImpactScore      int        `json:"impact_score"`
	Tier             types.Tier `json:"tier"`
}

// RejectedRisk is a risk the classifier refused to score
type RejectedRisk struct {
	Risk   Risk   `json:"risk"`
	Reason string `json:"reason"`
}

// RiskMatrix is the classified view of a risk collection.
// Grid[p-1][i-1] counts points with probability score p and impact score i.
type RiskMatrix struct {
	Points   []MatrixPoint  `json:"points"`
	Rejected []RejectedRisk `json:"rejected"`
	Grid     [3][3]int      `json:"grid"`
}

// ClassifyRisk scores a risk and derives its tier. A probability or impact
// label outside the three recognized values is a domain error; no default
// score is ever assigned.
func ClassifyRisk(risk Risk) (*MatrixPoint, error) {
	p, err := risk.Probability.Level()
	if err != nil {
		return nil, goerr.Wrap(ErrDomain, "unrecognized probability label",
			goerr.V(RiskIDKey, risk.ID), goerr.V(ValueKey, string(risk.Probability)))
	}
	i, err := risk.Impact.Level()
	if err != nil {
		return nil, goerr.Wrap(ErrDomain, "unrecognized impact label",
			goerr.V(RiskIDKey, risk.ID), goerr.V(ValueKey, string(risk.Impact)))
	}

	return &MatrixPoint{
		Risk:             risk,
		ProbabilityScore: p.Score(),
		ImpactScore:      i.Score(),
		Tier:             types.TierOf(p.Score(), i.Score()),
	}, nil
}

// ClassifyRisks classifies every risk in order. Rejected risks are reported
// alongside the points instead of failing the whole collection.
func ClassifyRisks(risks []Risk) *RiskMatrix {
	m := &RiskMatrix{
		Points:   []MatrixPoint{},
		Rejected: []RejectedRisk{},
	}
	for _, risk := range risks {
		point, err := ClassifyRisk(risk)
		if err != nil {
			m.Rejected = append(m.Rejected, RejectedRisk{Risk: risk, Reason: err.Error()})
			continue
		}
		m.Points = append(m.Points, *point)
		m.Grid[point.ProbabilityScore-1][point.ImpactScore-1]++
	}
	return m
}

// CountByTier counts classified points per tier
func (m *RiskMatrix) CountByTier() map[types.Tier]int {
	counts := make(map[types.Tier]int, 3)
	for _, p := range m.Points {
		counts[p.Tier]++
	}
	return counts
}
