// Package cache holds the per-interaction retrieval cache for audit API
// reads. A Session lives for one CLI command or one dashboard request and
// is never shared between goroutines.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	gocache "github.com/patrickmn/go-cache"
	"github.com/secmon-lab/auditai/pkg/domain/interfaces"
	"github.com/secmon-lab/auditai/pkg/domain/model"
	"github.com/secmon-lab/auditai/pkg/utils/logging"
)

// Session memoizes successful reads. Failed fetches are not stored, so a
// later Get retries the endpoint.
type Session struct {
	id      string
	fetcher interfaces.Fetcher
	store   *gocache.Cache
}

// New starts a session over fetcher
func New(fetcher interfaces.Fetcher) *Session {
	return &Session{
		id:      uuid.NewString(),
		fetcher: fetcher,
		store:   gocache.New(gocache.NoExpiration, 0),
	}
}

// ID identifies the session in logs
func (s *Session) ID() string {
	return s.id
}

func cacheKey(endpoint string, params url.Values) string {
	return endpoint + "?" + params.Encode()
}

// Get returns the body for endpoint and params, fetching it on first
// access within the session.
func (s *Session) Get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	key := cacheKey(endpoint, params)
	if v, ok := s.store.Get(key); ok {
		logging.From(ctx).Debug("cache hit", slog.String("session", s.id), slog.String("key", key))
		return v.(json.RawMessage), nil
	}

	body, err := s.fetcher.Fetch(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, goerr.Wrap(model.ErrAPI, "audit API returned a non-JSON body",
			goerr.V(model.EndpointKey, endpoint),
			goerr.V(model.DetailKey, truncate(string(body), 200)),
		)
	}

	raw := json.RawMessage(body)
	s.store.Set(key, raw, gocache.NoExpiration)
	logging.From(ctx).Debug("cache store", slog.String("session", s.id), slog.String("key", key))
	return raw, nil
}

// Load fetches endpoint through the session and decodes it into out
func (s *Session) Load(ctx context.Context, endpoint string, params url.Values, out any) error {
	raw, err := s.Get(ctx, endpoint, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return goerr.Wrap(model.ErrAPI, "unexpected audit API response shape",
			goerr.V(model.EndpointKey, endpoint),
			goerr.V(model.CauseKey, err.Error()),
		)
	}
	return nil
}

// Invalidate drops every cached entry of endpoint regardless of params.
// An empty endpoint drops everything.
func (s *Session) Invalidate(endpoint string) {
	if endpoint == "" {
		s.store.Flush()
		return
	}
	prefix := endpoint + "?"
	for key := range s.store.Items() {
		if strings.HasPrefix(key, prefix) {
			s.store.Delete(key)
		}
	}
}

// Reset empties the store and starts a new session identity
func (s *Session) Reset() {
	s.store.Flush()
	s.id = uuid.NewString()
}

// Len returns the number of cached entries
func (s *Session) Len() int {
	return s.store.ItemCount()
}

type ctxSessionKey struct{}

// With attaches s to ctx
func With(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxSessionKey{}, s)
}

// From returns the session attached to ctx, or nil
func From(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxSessionKey{}).(*Session)
	return s
}

// truncate keeps the first n runes of s
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i] + "..."
		}
		count++
	}
	return s
}
