package types

import "github.com/m-mizutani/goerr/v2"

// EntityKind identifies which entity a CSV batch creates
type EntityKind string

const (
	EntityKindTransaction EntityKind = "transaction"
	EntityKindRisk        EntityKind = "risk"
	EntityKindControl     EntityKind = "control"
)

var entityKindLabels = map[string]EntityKind{
	"transaction":  EntityKindTransaction,
	"transactions": EntityKindTransaction,
	"transacao":    EntityKindTransaction,
	"risk":         EntityKindRisk,
	"risks":        EntityKindRisk,
	"risco":        EntityKindRisk,
	"control":      EntityKindControl,
	"controls":     EntityKindControl,
	"controle":     EntityKindControl,
}

// AllEntityKinds returns all ingestible entity kinds
func AllEntityKinds() []EntityKind {
	return []EntityKind{EntityKindTransaction, EntityKindRisk, EntityKindControl}
}

// IsValid checks if the kind is valid
func (k EntityKind) IsValid() bool {
	switch k {
	case EntityKindTransaction, EntityKindRisk, EntityKindControl:
		return true
	default:
		return false
	}
}

func (k EntityKind) String() string {
	return string(k)
}

// ParseEntityKind parses an entity kind name
func ParseEntityKind(s string) (EntityKind, error) {
	kind, ok := lookupLabel(s, entityKindLabels)
	if !ok {
		return "", goerr.New("unknown entity kind", goerr.V("kind", s))
	}
	return kind, nil
}
