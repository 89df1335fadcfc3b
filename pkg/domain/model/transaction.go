package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/types"
	"github.com/shopspring/decimal"
)

// Transaction is a client transaction registered with the audit API.
// ID is assigned by the API and is zero on create requests.
type Transaction struct {
	ID            int64                   `json:"id,omitempty"`
	Client        string                  `json:"cliente"`
	Amount        Amount                  `json:"valor_transacao"`
	Date          Timestamp               `json:"data"`
	Status        types.TransactionStatus `json:"status"`
	Justification string                  `json:"justificativa"`
}

// NewTransaction builds a validated create request
func NewTransaction(client string, amount decimal.Decimal, date time.Time, status types.TransactionStatus, justification string) (*Transaction, error) {
	tx := &Transaction{
		Client:        client,
		Amount:        NewAmount(amount),
		Date:          NewTimestamp(date.UTC()),
		Status:        status,
		Justification: justification,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return tx, nil
}

// Validate checks the transaction against the data model invariants
func (t *Transaction) Validate() error {
	if t.Client == "" {
		return goerr.Wrap(ErrDomain, "client name is required", goerr.V(ColumnKey, "cliente"))
	}
	if t.Amount.IsNegative() {
		return goerr.Wrap(ErrDomain, "transaction amount must not be negative",
			goerr.V(ColumnKey, "valor_transacao"), goerr.V(ValueKey, t.Amount.String()))
	}
	if t.Date.IsZero() {
		return goerr.Wrap(ErrDomain, "transaction date is required", goerr.V(ColumnKey, "data"))
	}
	if !t.Status.IsValid() {
		return goerr.Wrap(ErrDomain, "invalid transaction status",
			goerr.V(ColumnKey, "status"), goerr.V(ValueKey, t.Status))
	}
	return nil
}
