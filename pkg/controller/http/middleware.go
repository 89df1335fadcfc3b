package http

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/auditai/pkg/domain/interfaces"
	"github.com/secmon-lab/auditai/pkg/repository/cache"
	"github.com/secmon-lab/auditai/pkg/utils/logging"
)

// sessionMiddleware attaches a fresh retrieval cache and a request-scoped
// logger to every request. Cached reads never outlive the request.
func sessionMiddleware(fetcher interfaces.Fetcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := cache.New(fetcher)
			logger := logging.Default().With(
				"request_id", middleware.GetReqID(r.Context()),
				"session", session.ID(),
			)

			ctx := cache.With(r.Context(), session)
			ctx = logging.With(ctx, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
