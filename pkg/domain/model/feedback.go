package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/types"
)

// Feedback is a reviewer label stored by the audit API
type Feedback struct {
	TransactionID int64               `json:"id_transacao"`
	Label         types.FeedbackLabel `json:"rotulo"`
	Observation   string              `json:"observacao"`
	RegisteredAt  Timestamp           `json:"data_registro"`
}

// FeedbackList is the /feedbacks response envelope
type FeedbackList struct {
	Feedbacks []Feedback `json:"feedbacks"`
}

// FeedbackRequest is the /rotular_transacao request body
type FeedbackRequest struct {
	TransactionID int64               `json:"id_transacao"`
	Label         types.FeedbackLabel `json:"rotulo"`
	Observation   string              `json:"observacao"`
}

// NewFeedbackRequest builds a validated labeling request
func NewFeedbackRequest(transactionID int64, label types.FeedbackLabel, observation string) (*FeedbackRequest, error) {
	req := &FeedbackRequest{
		TransactionID: transactionID,
		Label:         label,
		Observation:   observation,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate checks the request
func (r *FeedbackRequest) Validate() error {
	if r.TransactionID <= 0 {
		return goerr.Wrap(ErrDomain, "transaction ID must be positive", goerr.V(ValueKey, r.TransactionID))
	}
	if !r.Label.IsValid() {
		return goerr.Wrap(ErrDomain, "invalid feedback label", goerr.V(ValueKey, r.Label))
	}
	return nil
}
