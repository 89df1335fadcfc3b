package types

import "github.com/m-mizutani/goerr/v2"

// ControlType classifies how a control acts on its risk
type ControlType string

const (
	ControlTypePreventive ControlType = "Preventivo"
	ControlTypeDetective  ControlType = "Detectivo"
	ControlTypeCorrective ControlType = "Corretivo"
)

var controlTypeLabels = map[string]ControlType{
	"preventivo": ControlTypePreventive,
	"preventive": ControlTypePreventive,
	"detectivo":  ControlTypeDetective,
	"detetivo":   ControlTypeDetective,
	"detective":  ControlTypeDetective,
	"corretivo":  ControlTypeCorrective,
	"corrective": ControlTypeCorrective,
}

// IsValid checks if the control type is one of the canonical values
func (t ControlType) IsValid() bool {
	switch t {
	case ControlTypePreventive, ControlTypeDetective, ControlTypeCorrective:
		return true
	default:
		return false
	}
}

func (t ControlType) String() string {
	return string(t)
}

// ParseControlType parses a control type label
func ParseControlType(s string) (ControlType, error) {
	ct, ok := lookupLabel(s, controlTypeLabels)
	if !ok {
		return "", goerr.New("unrecognized control type", goerr.V("type", s))
	}
	return ct, nil
}
