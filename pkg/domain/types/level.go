package types

import "github.com/m-mizutani/goerr/v2"

// Level is the ordinal value behind qualitative low/medium/high labels.
// The zero value is not a level.
type Level int

const (
	LevelLow    Level = 1
	LevelMedium Level = 2
	LevelHigh   Level = 3
)

// Both grammatical genders and English are accepted so that
// "Média" probability and "Médio" impact resolve to the same level.
var levelLabels = map[string]Level{
	"baixa":  LevelLow,
	"baixo":  LevelLow,
	"low":    LevelLow,
	"media":  LevelMedium,
	"medio":  LevelMedium,
	"medium": LevelMedium,
	"alta":   LevelHigh,
	"alto":   LevelHigh,
	"high":   LevelHigh,
}

// ParseLevel resolves a qualitative label. Unknown or empty labels are
// rejected; there is no default level.
func ParseLevel(s string) (Level, error) {
	level, ok := lookupLabel(s, levelLabels)
	if !ok {
		return 0, goerr.New("unrecognized level label", goerr.V("label", s))
	}
	return level, nil
}

// IsValid checks if the level is one of the three ordinal values
func (l Level) IsValid() bool {
	return l >= LevelLow && l <= LevelHigh
}

// Score returns the ordinal score (1..3)
func (l Level) Score() int {
	return int(l)
}

// Probability is a likelihood label as sent to the audit API (feminine form).
type Probability string

const (
	ProbabilityLow    Probability = "Baixa"
	ProbabilityMedium Probability = "Média"
	ProbabilityHigh   Probability = "Alta"
)

// Level resolves the probability label to its ordinal level
func (p Probability) Level() (Level, error) {
	level, err := ParseLevel(string(p))
	if err != nil {
		return 0, goerr.Wrap(err, "invalid probability", goerr.V("probability", p))
	}
	return level, nil
}

// ParseProbability parses a probability label into its canonical form
func ParseProbability(s string) (Probability, error) {
	level, err := Probability(s).Level()
	if err != nil {
		return "", err
	}
	return ProbabilityOf(level), nil
}

// ProbabilityOf returns the canonical probability label for a level
func ProbabilityOf(l Level) Probability {
	switch l {
	case LevelLow:
		return ProbabilityLow
	case LevelMedium:
		return ProbabilityMedium
	case LevelHigh:
		return ProbabilityHigh
	default:
		return ""
	}
}

// Impact is a consequence label as sent to the audit API (masculine form).
type Impact string

const (
	ImpactLow    Impact = "Baixo"
	ImpactMedium Impact = "Médio"
	ImpactHigh   Impact = "Alto"
)

// Level resolves the impact label to its ordinal level
func (i Impact) Level() (Level, error) {
	level, err := ParseLevel(string(i))
	if err != nil {
		return 0, goerr.Wrap(err, "invalid impact", goerr.V("impact", i))
	}
	return level, nil
}

// ParseImpact parses an impact label into its canonical form
func ParseImpact(s string) (Impact, error) {
	level, err := Impact(s).Level()
	if err != nil {
		return "", err
	}
	return ImpactOf(level), nil
}

// ImpactOf returns the canonical impact label for a level
func ImpactOf(l Level) Impact {
	switch l {
	case LevelLow:
		return ImpactLow
	case LevelMedium:
		return ImpactMedium
	case LevelHigh:
		return ImpactHigh
	default:
		return ""
	}
}

// Effectiveness rates how well a control mitigates its risk.
type Effectiveness string

const (
	EffectivenessHigh   Effectiveness = "Alta"
	EffectivenessMedium Effectiveness = "Média"
	EffectivenessLow    Effectiveness = "Baixa"
)

// ParseEffectiveness parses an effectiveness label into its canonical form
func ParseEffectiveness(s string) (Effectiveness, error) {
	level, err := ParseLevel(s)
	if err != nil {
		return "", goerr.Wrap(err, "invalid effectiveness", goerr.V("effectiveness", s))
	}
	switch level {
	case LevelLow:
		return EffectivenessLow, nil
	case LevelMedium:
		return EffectivenessMedium, nil
	default:
		return EffectivenessHigh, nil
	}
}
