package types

import "github.com/m-mizutani/goerr/v2"

// RiskCategory is the business area a risk belongs to
type RiskCategory string

const (
	RiskCategoryFinancial   RiskCategory = "Financeiro"
	RiskCategoryOperational RiskCategory = "Operacional"
	RiskCategoryLegal       RiskCategory = "Legal"
	RiskCategoryTechnology  RiskCategory = "Tecnologia"
)

var riskCategoryLabels = map[string]RiskCategory{
	"financeiro":  RiskCategoryFinancial,
	"financial":   RiskCategoryFinancial,
	"operacional": RiskCategoryOperational,
	"operational": RiskCategoryOperational,
	"legal":       RiskCategoryLegal,
	"tecnologia":  RiskCategoryTechnology,
	"technology":  RiskCategoryTechnology,
}

// AllRiskCategories returns all valid risk categories
func AllRiskCategories() []RiskCategory {
	return []RiskCategory{
		RiskCategoryFinancial,
		RiskCategoryOperational,
		RiskCategoryLegal,
		RiskCategoryTechnology,
	}
}

// IsValid checks if the category is one of the canonical values
func (c RiskCategory) IsValid() bool {
	switch c {
	case RiskCategoryFinancial,
		RiskCategoryOperational,
		RiskCategoryLegal,
		RiskCategoryTechnology:
		return true
	default:
		return false
	}
}

func (c RiskCategory) String() string {
	return string(c)
}

// ParseRiskCategory parses a category label
func ParseRiskCategory(s string) (RiskCategory, error) {
	category, ok := lookupLabel(s, riskCategoryLabels)
	if !ok {
		return "", goerr.New("unrecognized risk category", goerr.V("category", s))
	}
	return category, nil
}
