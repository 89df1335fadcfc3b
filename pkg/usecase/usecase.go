package usecase

import (
	"context"
	"time"

	"github.com/secmon-lab/auditai/pkg/domain/interfaces"
	"github.com/secmon-lab/auditai/pkg/repository/cache"
	"golang.org/x/time/rate"
)

type UseCases struct {
	api      interfaces.AuditAPI
	location *time.Location
	limiter  *rate.Limiter

	Ingest   *IngestUseCase
	Matrix   *MatrixUseCase
	Report   *ReportUseCase
	Feedback *FeedbackUseCase
	Register *RegisterUseCase
}

type Option func(*UseCases)

// WithLocation sets the zone used for timestamps that carry no offset
func WithLocation(loc *time.Location) Option {
	return func(uc *UseCases) {
		uc.location = loc
	}
}

// WithSubmitLimiter paces batch submissions. nil disables pacing.
func WithSubmitLimiter(l *rate.Limiter) Option {
	return func(uc *UseCases) {
		uc.limiter = l
	}
}

func New(api interfaces.AuditAPI, opts ...Option) *UseCases {
	uc := &UseCases{
		api:      api,
		location: time.UTC,
	}

	for _, opt := range opts {
		opt(uc)
	}

	parser := &rowParser{location: uc.location}
	uc.Register = NewRegisterUseCase(api, parser)
	uc.Ingest = NewIngestUseCase(api, parser, uc.limiter)
	uc.Report = NewReportUseCase(api)
	uc.Matrix = NewMatrixUseCase(api)
	uc.Feedback = NewFeedbackUseCase(api)

	return uc
}

// sessionFrom returns the retrieval cache bound to ctx. Without one, a
// session scoped to the single call is created.
func sessionFrom(ctx context.Context, api interfaces.Fetcher) *cache.Session {
	if s := cache.From(ctx); s != nil {
		return s
	}
	return cache.New(api)
}
