package types

import "github.com/m-mizutani/goerr/v2"

// Collection names a read-only list served by the audit API
type Collection string

const (
	CollectionTransactions Collection = "transactions"
	CollectionAudits       Collection = "audits"
	CollectionRisks        Collection = "risks"
	CollectionControls     Collection = "controls"
	CollectionFeedbacks    Collection = "feedbacks"
)

// AllCollections returns all readable collections
func AllCollections() []Collection {
	return []Collection{
		CollectionTransactions,
		CollectionAudits,
		CollectionRisks,
		CollectionControls,
		CollectionFeedbacks,
	}
}

// IsValid checks if the collection is valid
func (c Collection) IsValid() bool {
	switch c {
	case CollectionTransactions,
		CollectionAudits,
		CollectionRisks,
		CollectionControls,
		CollectionFeedbacks:
		return true
	default:
		return false
	}
}

func (c Collection) String() string {
	return string(c)
}

// ParseCollection parses a collection name
func ParseCollection(s string) (Collection, error) {
	c := Collection(NormalizeLabel(s))
	if !c.IsValid() {
		return "", goerr.New("unknown collection", goerr.V("collection", s))
	}
	return c, nil
}
