package types

import "github.com/m-mizutani/goerr/v2"

// FeedbackLabel is a reviewer's verdict on an audited transaction
type FeedbackLabel string

const (
	FeedbackLabelConfirmedViolation FeedbackLabel = "violacao_confirmada"
	FeedbackLabelFalsePositive      FeedbackLabel = "falso_positivo"
	FeedbackLabelNotEvaluated       FeedbackLabel = "nao_avaliado"
)

// AllFeedbackLabels returns all valid feedback labels
func AllFeedbackLabels() []FeedbackLabel {
	return []FeedbackLabel{
		FeedbackLabelConfirmedViolation,
		FeedbackLabelFalsePositive,
		FeedbackLabelNotEvaluated,
	}
}

// IsValid checks if the label is valid
func (l FeedbackLabel) IsValid() bool {
	switch l {
	case FeedbackLabelConfirmedViolation,
		FeedbackLabelFalsePositive,
		FeedbackLabelNotEvaluated:
		return true
	default:
		return false
	}
}

func (l FeedbackLabel) String() string {
	return string(l)
}

// ParseFeedbackLabel parses a feedback label. Only the wire values are accepted.
func ParseFeedbackLabel(s string) (FeedbackLabel, error) {
	label := FeedbackLabel(NormalizeLabel(s))
	if !label.IsValid() {
		return "", goerr.New("unrecognized feedback label", goerr.V("label", s))
	}
	return label, nil
}
