package usecase_test

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/interfaces"
	"github.com/secmon-lab/auditai/pkg/domain/model"
)

// fakeAPI keeps created records in memory and serves them back on reads
type fakeAPI struct {
	mu sync.Mutex

	transactions []model.Transaction
	risks        []model.Risk
	controls     []model.Control
	feedbacks    []model.Feedback
	audits       []model.AuditResult

	fetches map[string]int
	creates int

	// rejectClient makes CreateTransaction fail with an API error for the client
	rejectClient string
	// clientErr makes CreateTransaction fail with the given error for the client
	clientErr map[string]error
	// payload overrides the response body of an endpoint
	payload map[string]string
	// failFetch makes Fetch fail for the endpoint
	failFetch map[string]error
	// onCreate runs after every successful create
	onCreate func()
}

var _ interfaces.AuditAPI = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		fetches:   map[string]int{},
		failFetch: map[string]error{},
		clientErr: map[string]error{},
		payload:   map[string]string{},
	}
}

func (f *fakeAPI) Fetch(_ context.Context, endpoint string, _ url.Values) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fetches[endpoint]++
	if err, ok := f.failFetch[endpoint]; ok {
		return nil, err
	}
	if body, ok := f.payload[endpoint]; ok {
		return []byte(body), nil
	}

	switch endpoint {
	case model.EndpointReport:
		return json.Marshal(nonNil(f.transactions))
	case model.EndpointAudits:
		return json.Marshal(model.AuditList{Audits: nonNil(f.audits)})
	case model.EndpointRisks:
		return json.Marshal(nonNil(f.risks))
	case model.EndpointControls:
		return json.Marshal(nonNil(f.controls))
	case model.EndpointFeedbacks:
		return json.Marshal(model.FeedbackList{Feedbacks: nonNil(f.feedbacks)})
	}
	return nil, goerr.Wrap(model.ErrAPI, "Not Found", goerr.V(model.StatusKey, 404))
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (f *fakeAPI) created() {
	f.creates++
	if f.onCreate != nil {
		f.onCreate()
	}
}

func (f *fakeAPI) CreateTransaction(_ context.Context, tx *model.Transaction) (*model.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.rejectClient != "" && tx.Client == f.rejectClient {
		return nil, goerr.Wrap(model.ErrAPI, "Cliente bloqueado",
			goerr.V(model.StatusKey, 400), goerr.V(model.DetailKey, "Cliente bloqueado"))
	}
	if err, ok := f.clientErr[tx.Client]; ok {
		return nil, err
	}
	created := *tx
	created.ID = int64(len(f.transactions) + 1)
	f.transactions = append(f.transactions, created)
	f.created()
	return &created, nil
}

func (f *fakeAPI) CreateRisk(_ context.Context, risk *model.Risk) (*model.Risk, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	created := *risk
	created.ID = int64(len(f.risks) + 1)
	f.risks = append(f.risks, created)
	f.created()
	return &created, nil
}

func (f *fakeAPI) CreateControl(_ context.Context, ctrl *model.Control) (*model.Control, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	created := *ctrl
	created.ID = int64(len(f.controls) + 1)
	f.controls = append(f.controls, created)
	f.created()
	return &created, nil
}

func (f *fakeAPI) LabelTransaction(_ context.Context, req *model.FeedbackRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.feedbacks = append(f.feedbacks, model.Feedback{
		TransactionID: req.TransactionID,
		Label:         req.Label,
		Observation:   req.Observation,
	})
	f.created()
	return nil
}
