package cache_test

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/auditai/pkg/domain/model"
	"github.com/secmon-lab/auditai/pkg/repository/cache"
)

type fakeFetcher struct {
	calls map[string]int
	body  map[string]string
	fail  map[string]error
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		calls: map[string]int{},
		body:  map[string]string{},
		fail:  map[string]error{},
	}
}

func (f *fakeFetcher) Fetch(_ context.Context, endpoint string, _ url.Values) ([]byte, error) {
	f.calls[endpoint]++
	if err, ok := f.fail[endpoint]; ok {
		return nil, err
	}
	return []byte(f.body[endpoint]), nil
}

func TestSession_GetMemoizes(t *testing.T) {
	ctx := context.Background()
	f := newFakeFetcher()
	f.body[model.EndpointReport] = `[{"id":1}]`
	s := cache.New(f)

	first, err := s.Get(ctx, model.EndpointReport, nil)
	gt.NoError(t, err).Required()
	second, err := s.Get(ctx, model.EndpointReport, nil)
	gt.NoError(t, err).Required()

	gt.Value(t, string(second)).Equal(string(first))
	gt.Value(t, f.calls[model.EndpointReport]).Equal(1)

	s.Invalidate(model.EndpointReport)
	_, err = s.Get(ctx, model.EndpointReport, nil)
	gt.NoError(t, err).Required()
	gt.Value(t, f.calls[model.EndpointReport]).Equal(2)
}

func TestSession_ParamsAreSeparateEntries(t *testing.T) {
	ctx := context.Background()
	f := newFakeFetcher()
	f.body[model.EndpointAudits] = `{"auditorias":[]}`
	s := cache.New(f)

	_, err := s.Get(ctx, model.EndpointAudits, url.Values{"page": {"1"}})
	gt.NoError(t, err).Required()
	_, err = s.Get(ctx, model.EndpointAudits, url.Values{"page": {"2"}})
	gt.NoError(t, err).Required()
	gt.Value(t, f.calls[model.EndpointAudits]).Equal(2)
	gt.Value(t, s.Len()).Equal(2)

	s.Invalidate(model.EndpointAudits)
	gt.Value(t, s.Len()).Equal(0)
}

func TestSession_FailureNotCached(t *testing.T) {
	ctx := context.Background()
	f := newFakeFetcher()
	f.fail[model.EndpointRisks] = goerr.Wrap(model.ErrTransport, "down")
	s := cache.New(f)

	_, err := s.Get(ctx, model.EndpointRisks, nil)
	gt.Error(t, err).Is(model.ErrTransport)

	delete(f.fail, model.EndpointRisks)
	f.body[model.EndpointRisks] = `[]`
	raw, err := s.Get(ctx, model.EndpointRisks, nil)
	gt.NoError(t, err).Required()
	gt.Value(t, string(raw)).Equal(`[]`)
	gt.Value(t, f.calls[model.EndpointRisks]).Equal(2)
}

func TestSession_NonJSONBody(t *testing.T) {
	f := newFakeFetcher()
	f.body[model.EndpointReport] = `<html>502</html>`
	s := cache.New(f)

	_, err := s.Get(context.Background(), model.EndpointReport, nil)
	gt.Error(t, err).Is(model.ErrAPI)
	gt.Value(t, s.Len()).Equal(0)
}

func TestSession_NonJSONBodyDetailIsValidUTF8(t *testing.T) {
	f := newFakeFetcher()
	f.body[model.EndpointReport] = "Serviço indisponível: " + strings.Repeat("ç", 300)
	s := cache.New(f)

	_, err := s.Get(context.Background(), model.EndpointReport, nil)
	gt.Error(t, err).Is(model.ErrAPI)

	detail := model.DetailOf(err)
	gt.Bool(t, utf8.ValidString(detail)).True()
	gt.String(t, detail).HasPrefix("Serviço indisponível: ç")
	gt.String(t, detail).HasSuffix("...")
	gt.Value(t, utf8.RuneCountInString(detail)).Equal(203)
}

func TestSession_InvalidateAllAndReset(t *testing.T) {
	ctx := context.Background()
	f := newFakeFetcher()
	f.body[model.EndpointRisks] = `[]`
	f.body[model.EndpointControls] = `[]`
	s := cache.New(f)

	_, _ = s.Get(ctx, model.EndpointRisks, nil)
	_, _ = s.Get(ctx, model.EndpointControls, nil)
	s.Invalidate("")
	gt.Value(t, s.Len()).Equal(0)

	_, _ = s.Get(ctx, model.EndpointRisks, nil)
	id := s.ID()
	s.Reset()
	gt.Value(t, s.Len()).Equal(0)
	gt.Bool(t, s.ID() != id).True()
}

func TestSession_Load(t *testing.T) {
	f := newFakeFetcher()
	f.body[model.EndpointFeedbacks] = `{"feedbacks":[{"id_transacao":3,"rotulo":"falso_positivo","observacao":"ok","data_registro":"2024-01-02T03:04:05Z"}]}`
	s := cache.New(f)

	var list model.FeedbackList
	gt.NoError(t, s.Load(context.Background(), model.EndpointFeedbacks, nil, &list)).Required()
	gt.Array(t, list.Feedbacks).Length(1).Required()
	gt.Value(t, list.Feedbacks[0].TransactionID).Equal(int64(3))

	var wrong []int
	gt.Error(t, s.Load(context.Background(), model.EndpointFeedbacks, nil, &wrong)).Is(model.ErrAPI)
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	gt.Value(t, cache.From(ctx)).Nil()

	s := cache.New(newFakeFetcher())
	gt.Value(t, cache.From(cache.With(ctx, s))).Equal(s)
}
