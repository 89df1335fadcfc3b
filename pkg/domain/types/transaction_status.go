package types

import "github.com/m-mizutani/goerr/v2"

// TransactionStatus represents the review status of a transaction
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "Pendente"
	TransactionStatusApproved TransactionStatus = "Aprovado"
	TransactionStatusRejected TransactionStatus = "Rejeitado"
)

var transactionStatusLabels = map[string]TransactionStatus{
	"pendente":  TransactionStatusPending,
	"pending":   TransactionStatusPending,
	"aprovado":  TransactionStatusApproved,
	"approved":  TransactionStatusApproved,
	"rejeitado": TransactionStatusRejected,
	"rejected":  TransactionStatusRejected,
}

// AllTransactionStatuses returns all valid transaction statuses
func AllTransactionStatuses() []TransactionStatus {
	return []TransactionStatus{
		TransactionStatusPending,
		TransactionStatusApproved,
		TransactionStatusRejected,
	}
}

// IsValid checks if the status is one of the canonical values
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending,
		TransactionStatusApproved,
		TransactionStatusRejected:
		return true
	default:
		return false
	}
}

func (s TransactionStatus) String() string {
	return string(s)
}

// ParseTransactionStatus parses a status label, accepting Portuguese and
// English spellings regardless of case and accents.
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	status, ok := lookupLabel(s, transactionStatusLabels)
	if !ok {
		return "", goerr.New("unrecognized transaction status", goerr.V("status", s))
	}
	return status, nil
}
