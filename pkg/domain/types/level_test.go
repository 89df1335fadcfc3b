package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/auditai/pkg/domain/types"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    types.Level
		wantErr bool
	}{
		{"Baixa", types.LevelLow, false},
		{"baixo", types.LevelLow, false},
		{"Low", types.LevelLow, false},
		{"Média", types.LevelMedium, false},
		{"MEDIA", types.LevelMedium, false},
		{"  Médio ", types.LevelMedium, false},
		{"medium", types.LevelMedium, false},
		{"Alta", types.LevelHigh, false},
		{"ALTO", types.LevelHigh, false},
		{"high", types.LevelHigh, false},
		{"", 0, true},
		{"Crítica", 0, true},
		{"2", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := types.ParseLevel(tt.input)
			if tt.wantErr {
				gt.Value(t, err).NotNil()
				gt.Bool(t, got.IsValid()).False()
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestProbability_CanonicalForm(t *testing.T) {
	p, err := types.ParseProbability("medio")
	gt.NoError(t, err).Required()
	gt.Value(t, p).Equal(types.ProbabilityMedium)

	i, err := types.ParseImpact("ALTA")
	gt.NoError(t, err).Required()
	gt.Value(t, i).Equal(types.ImpactHigh)

	e, err := types.ParseEffectiveness("low")
	gt.NoError(t, err).Required()
	gt.Value(t, e).Equal(types.EffectivenessLow)
}

func TestProbability_UnknownLabelHasNoScore(t *testing.T) {
	_, err := types.Probability("Muito Alta").Level()
	gt.Value(t, err).NotNil()

	_, err = types.Impact("").Level()
	gt.Value(t, err).NotNil()
}

func TestNormalizeLabel(t *testing.T) {
	gt.Value(t, types.NormalizeLabel(" Média ")).Equal("media")
	gt.Value(t, types.NormalizeLabel("Não Avaliado")).Equal("nao avaliado")
	gt.Value(t, types.NormalizeLabel("TECNOLOGIA")).Equal("tecnologia")
}
