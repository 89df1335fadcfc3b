// Package auditapi is the HTTP client for the external audit/compliance
// API. Every call is attempted once; there is no retry.
package auditapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/interfaces"
	"github.com/secmon-lab/auditai/pkg/domain/model"
	"github.com/secmon-lab/auditai/pkg/utils/logging"
)

const (
	DefaultBaseURL = "https://auditai-api.onrender.com"
	DefaultTimeout = 30 * time.Second
)

// Client implements interfaces.AuditAPI on top of resty
type Client struct {
	baseURL    string
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
	rc         *resty.Client
}

var _ interfaces.AuditAPI = (*Client)(nil)

// Option configures Client
type Option func(*Client)

// WithTimeout bounds every request. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHTTPClient replaces the underlying transport client, mainly for tests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for baseURL. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, goerr.New("invalid audit API base URL", goerr.V("base_url", baseURL))
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient != nil {
		c.rc = resty.NewWithClient(c.httpClient)
	} else {
		c.rc = resty.New()
	}
	c.rc.SetBaseURL(c.baseURL).
		SetTimeout(c.timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if c.userAgent != "" {
		c.rc.SetHeader("User-Agent", c.userAgent)
	}

	return c, nil
}

// BaseURL returns the normalized base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch GETs endpoint and returns the raw body of a 2xx response
func (c *Client) Fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	req := c.rc.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParamsFromValues(params)
	}

	started := time.Now()
	resp, err := req.Get(endpoint)
	if err != nil {
		return nil, transportError(endpoint, err)
	}

	logging.From(ctx).Debug("audit API read",
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode()),
		slog.Duration("elapsed", time.Since(started)),
	)

	if !resp.IsSuccess() {
		return nil, apiError(endpoint, resp)
	}
	return resp.Body(), nil
}

// CreateTransaction posts to /transacao
func (c *Client) CreateTransaction(ctx context.Context, tx *model.Transaction) (*model.Transaction, error) {
	created := *tx
	if err := c.post(ctx, model.EndpointTransaction, tx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateRisk posts to /risco
func (c *Client) CreateRisk(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	created := *risk
	if err := c.post(ctx, model.EndpointRisk, risk, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateControl posts to /controle
func (c *Client) CreateControl(ctx context.Context, ctrl *model.Control) (*model.Control, error) {
	created := *ctrl
	if err := c.post(ctx, model.EndpointControl, ctrl, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// LabelTransaction posts a reviewer label to /rotular_transacao
func (c *Client) LabelTransaction(ctx context.Context, req *model.FeedbackRequest) error {
	return c.post(ctx, model.EndpointLabel, req, nil)
}

// post sends body as JSON. When out is not nil and the API answers with a
// JSON object, the object is decoded over out so server-assigned fields
// (such as id) are picked up. Other 2xx bodies are accepted as-is.
func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	started := time.Now()
	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(endpoint)
	if err != nil {
		return transportError(endpoint, err)
	}

	logging.From(ctx).Debug("audit API write",
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode()),
		slog.Duration("elapsed", time.Since(started)),
	)

	if !resp.IsSuccess() {
		return apiError(endpoint, resp)
	}

	if out != nil {
		raw := strings.TrimSpace(string(resp.Body()))
		if strings.HasPrefix(raw, "{") {
			if err := json.Unmarshal([]byte(raw), out); err != nil {
				logging.From(ctx).Warn("unexpected audit API response body",
					slog.String("endpoint", endpoint),
					slog.Any("error", err),
				)
			}
		}
	}
	return nil
}

func transportError(endpoint string, err error) error {
	return goerr.Wrap(model.ErrTransport, "failed to reach audit API",
		goerr.V(model.EndpointKey, endpoint),
		goerr.V(model.CauseKey, err.Error()),
	)
}

func apiError(endpoint string, resp *resty.Response) error {
	detail := extractDetail(resp.Body())
	if detail == "" {
		detail = http.StatusText(resp.StatusCode())
	}
	return goerr.Wrap(model.ErrAPI, detail,
		goerr.V(model.EndpointKey, endpoint),
		goerr.V(model.StatusKey, resp.StatusCode()),
		goerr.V(model.DetailKey, detail),
	)
}

// extractDetail returns the API's "detail" field verbatim. Structured
// details (FastAPI validation lists) are kept as their JSON text. Bodies
// without a detail are returned trimmed.
func extractDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Detail) > 0 && string(envelope.Detail) != "null" {
		var s string
		if err := json.Unmarshal(envelope.Detail, &s); err == nil {
			return s
		}
		return string(envelope.Detail)
	}
	return strings.TrimSpace(string(body))
}
