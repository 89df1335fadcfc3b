package auditapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/auditai/pkg/domain/model"
	"github.com/secmon-lab/auditai/pkg/domain/types"
	"github.com/secmon-lab/auditai/pkg/service/auditapi"
	"github.com/shopspring/decimal"
)

func newClient(t *testing.T, h http.HandlerFunc, opts ...auditapi.Option) *auditapi.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	client, err := auditapi.New(srv.URL+"/", opts...)
	gt.NoError(t, err).Required()
	return client
}

func TestFetch(t *testing.T) {
	var gotPath, gotQuery, gotUA string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{"auditorias":[]}`))
	}, auditapi.WithUserAgent("auditai-test"))

	body, err := client.Fetch(context.Background(), model.EndpointAudits, url.Values{"limit": {"10"}})
	gt.NoError(t, err).Required()
	gt.Value(t, string(body)).Equal(`{"auditorias":[]}`)
	gt.Value(t, gotPath).Equal("/auditoria")
	gt.Value(t, gotQuery).Equal("limit=10")
	gt.Value(t, gotUA).Equal("auditai-test")
}

func TestFetch_ApiError(t *testing.T) {
	calls := 0
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Relatório indisponível"}`))
	})

	_, err := client.Fetch(context.Background(), model.EndpointReport, nil)
	gt.Error(t, err).Is(model.ErrAPI)
	gt.Value(t, model.StatusOf(err)).Equal(http.StatusNotFound)
	gt.Value(t, model.DetailOf(err)).Equal("Relatório indisponível")
	gt.Value(t, calls).Equal(1)
}

func TestFetch_Timeout(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, auditapi.WithTimeout(50*time.Millisecond))

	_, err := client.Fetch(context.Background(), model.EndpointRisks, nil)
	gt.Error(t, err).Is(model.ErrTransport)
	gt.Value(t, model.KindOf(err)).Equal(model.KindTransport)
}

func TestCreateTransaction(t *testing.T) {
	var got map[string]any
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Method).Equal(http.MethodPost)
		gt.Value(t, r.URL.Path).Equal("/transacao")
		raw, err := io.ReadAll(r.Body)
		gt.NoError(t, err)
		gt.NoError(t, json.Unmarshal(raw, &got))
		_, _ = w.Write([]byte(`{"id":7,"cliente":"Acme"}`))
	})

	tx, err := model.NewTransaction("Acme", decimal.RequireFromString("1500.25"),
		time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), types.TransactionStatusPending, "")
	gt.NoError(t, err).Required()

	created, err := client.CreateTransaction(context.Background(), tx)
	gt.NoError(t, err).Required()
	gt.Value(t, created.ID).Equal(int64(7))
	gt.Value(t, created.Status).Equal(types.TransactionStatusPending)

	gt.Value(t, got["valor_transacao"]).Equal(1500.25)
	gt.Value(t, got["data"]).Equal("2024-03-01T12:00:00Z")
	gt.Value(t, got["status"]).Equal("Pendente")
	gt.Map(t, got).NotHasKey("id")
}

func TestLabelTransaction_PlainTextBody(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte("  invalid label \n"))
	})

	err := client.LabelTransaction(context.Background(), &model.FeedbackRequest{
		TransactionID: 1,
		Label:         types.FeedbackLabelFalsePositive,
	})
	gt.Error(t, err).Is(model.ErrAPI)
	gt.Value(t, model.DetailOf(err)).Equal("invalid label")
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := auditapi.New("not a url")
	gt.Error(t, err)
}

func TestExtractDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string detail", `{"detail":"Cliente obrigatório"}`, "Cliente obrigatório"},
		{"structured detail", `{"detail":[{"loc":["body","status"]}]}`, `[{"loc":["body","status"]}]`},
		{"no detail", `{"message":"x"}`, `{"message":"x"}`},
		{"empty", ``, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, auditapi.ExtractDetail([]byte(tt.body))).Equal(tt.want)
		})
	}
}
