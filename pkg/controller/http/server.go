package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/auditai/pkg/domain/interfaces"
	"github.com/secmon-lab/auditai/pkg/usecase"
	"github.com/secmon-lab/auditai/pkg/utils/logging"
)

const defaultMaxUploadSize = 10 << 20

type Server struct {
	router        *chi.Mux
	uc            *usecase.UseCases
	fetcher       interfaces.Fetcher
	maxUploadSize int64
}

type Options func(*Server)

// WithMaxUploadSize limits the size of uploaded CSV files in bytes
func WithMaxUploadSize(n int64) Options {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadSize = n
		}
	}
}

// New builds the dashboard backend. fetcher backs the retrieval cache that
// is created for every request.
func New(uc *usecase.UseCases, fetcher interfaces.Fetcher, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:        r,
		uc:            uc,
		fetcher:       fetcher,
		maxUploadSize: defaultMaxUploadSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(sessionMiddleware(s.fetcher))

		r.Get("/matrix", s.matrixHandler)
		r.Get("/export/{collection}", s.exportHandler)
		r.Get("/{collection}", s.listHandler)

		r.Post("/upload/{kind}", s.uploadHandler)
		r.Post("/transactions", s.registerHandler("transaction"))
		r.Post("/risks", s.registerHandler("risk"))
		r.Post("/controls", s.registerHandler("control"))
		r.Post("/feedbacks", s.feedbackHandler)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
