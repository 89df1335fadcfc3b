package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/auditai/pkg/domain/model"
	"github.com/secmon-lab/auditai/pkg/domain/types"
)

func newRisk(id int64, p types.Probability, i types.Impact) model.Risk {
	return model.Risk{
		ID:          id,
		Title:       "risk",
		Category:    types.RiskCategoryOperational,
		Probability: p,
		Impact:      i,
		Status:      types.RiskStatusOpen,
	}
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		name     string
		p        types.Probability
		i        types.Impact
		wantP    int
		wantI    int
		wantTier types.Tier
	}{
		{"high/high", types.ProbabilityHigh, types.ImpactHigh, 3, 3, types.TierHigh},
		{"medium/medium", types.ProbabilityMedium, types.ImpactMedium, 2, 2, types.TierMedium},
		{"low/high is not max()", types.ProbabilityLow, types.ImpactHigh, 1, 3, types.TierLow},
		{"high/medium", types.ProbabilityHigh, types.ImpactMedium, 3, 2, types.TierMedium},
		{"lenient labels", types.Probability("alta"), types.Impact("Alta"), 3, 3, types.TierHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, err := model.ClassifyRisk(newRisk(1, tt.p, tt.i))
			gt.NoError(t, err).Required()
			gt.Value(t, point.ProbabilityScore).Equal(tt.wantP)
			gt.Value(t, point.ImpactScore).Equal(tt.wantI)
			gt.Value(t, point.Tier).Equal(tt.wantTier)
		})
	}
}

func TestClassifyRisk_ScoresAreInjectiveOnGrid(t *testing.T) {
	probabilities := []types.Probability{types.ProbabilityLow, types.ProbabilityMedium, types.ProbabilityHigh}
	impacts := []types.Impact{types.ImpactLow, types.ImpactMedium, types.ImpactHigh}

	seen := make(map[[2]int]bool)
	for _, p := range probabilities {
		for _, i := range impacts {
			point, err := model.ClassifyRisk(newRisk(1, p, i))
			gt.NoError(t, err).Required()
			key := [2]int{point.ProbabilityScore, point.ImpactScore}
			gt.Bool(t, seen[key]).False()
			seen[key] = true
		}
	}
	gt.Value(t, len(seen)).Equal(9)
}

func TestClassifyRisk_RejectsUnknownLabels(t *testing.T) {
	tests := []struct {
		name string
		p    types.Probability
		i    types.Impact
	}{
		{"empty probability", "", types.ImpactHigh},
		{"unknown probability", "Crítica", types.ImpactHigh},
		{"empty impact", types.ProbabilityHigh, ""},
		{"numeric impact", types.ProbabilityLow, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, err := model.ClassifyRisk(newRisk(7, tt.p, tt.i))
			gt.Value(t, point).Nil()
			gt.Bool(t, errors.Is(err, model.ErrDomain)).True()
			gt.Value(t, model.KindOf(err)).Equal(model.KindDomain)

			id, ok := model.ValueOf(err, model.RiskIDKey)
			gt.Bool(t, ok).True()
			gt.Value(t, id).Equal(any(int64(7)))
		})
	}
}

func TestClassifyRisks(t *testing.T) {
	risks := []model.Risk{
		newRisk(1, types.ProbabilityHigh, types.ImpactHigh),
		newRisk(2, "Desconhecida", types.ImpactLow),
		newRisk(3, types.ProbabilityLow, types.ImpactHigh),
		newRisk(4, types.ProbabilityHigh, types.ImpactHigh),
	}

	m := model.ClassifyRisks(risks)
	gt.Array(t, m.Points).Length(3).Required()
	gt.Array(t, m.Rejected).Length(1).Required()
	gt.Value(t, m.Rejected[0].Risk.ID).Equal(int64(2))
	gt.Value(t, m.Points[0].Risk.ID).Equal(int64(1))
	gt.Value(t, m.Points[1].Risk.ID).Equal(int64(3))
	gt.Value(t, m.Grid[2][2]).Equal(2)
	gt.Value(t, m.Grid[0][2]).Equal(1)

	counts := m.CountByTier()
	gt.Value(t, counts[types.TierHigh]).Equal(2)
	gt.Value(t, counts[types.TierLow]).Equal(1)
	gt.Value(t, counts[types.TierMedium]).Equal(0)
}
