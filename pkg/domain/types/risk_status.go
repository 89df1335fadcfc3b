package types

import "github.com/m-mizutani/goerr/v2"

// RiskStatus represents the lifecycle state of a risk
type RiskStatus string

const (
	RiskStatusOpen      RiskStatus = "Aberto"
	RiskStatusMitigated RiskStatus = "Mitigado"
	RiskStatusClosed    RiskStatus = "Fechado"
)

var riskStatusLabels = map[string]RiskStatus{
	"aberto":    RiskStatusOpen,
	"open":      RiskStatusOpen,
	"mitigado":  RiskStatusMitigated,
	"mitigated": RiskStatusMitigated,
	"fechado":   RiskStatusClosed,
	"closed":    RiskStatusClosed,
}

// IsValid checks if the status is one of the canonical values
func (s RiskStatus) IsValid() bool {
	switch s {
	case RiskStatusOpen, RiskStatusMitigated, RiskStatusClosed:
		return true
	default:
		return false
	}
}

func (s RiskStatus) String() string {
	return string(s)
}

// ParseRiskStatus parses a risk status label
func ParseRiskStatus(s string) (RiskStatus, error) {
	status, ok := lookupLabel(s, riskStatusLabels)
	if !ok {
		return "", goerr.New("unrecognized risk status", goerr.V("status", s))
	}
	return status, nil
}
