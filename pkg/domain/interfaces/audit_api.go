package interfaces

import (
	"context"
	"net/url"

	"github.com/secmon-lab/auditai/pkg/domain/model"
)

// Fetcher issues read requests against the audit API and returns the raw
// JSON body of a 2xx response.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error)
}

// AuditAPI is the external audit/compliance service. Implementations must not
// retry: each call is attempted once and bounded by a timeout.
type AuditAPI interface {
	Fetcher

	CreateTransaction(ctx context.Context, tx *model.Transaction) (*model.Transaction, error)
	CreateRisk(ctx context.Context, risk *model.Risk) (*model.Risk, error)
	CreateControl(ctx context.Context, ctrl *model.Control) (*model.Control, error)
	LabelTransaction(ctx context.Context, req *model.FeedbackRequest) error
}
