package middleware

import (
	"net/http"
	"strings"

	"github.com/lucasrivero/brandforge-backend/api/responses"
	pkgerrors "github.com/lucasrivero/brandforge-backend/pkg/errors"
	"github.com/lucasrivero/brandforge-backend/pkg/logger"
)

const userIDHeader = "X-User-ID"

// Auth reads the caller identity from the X-User-ID header and seeds the
// request context. Token verification lives at the edge; the backend only
// needs the resolved user identifier.
func Auth(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(userIDHeader))
			if userID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id header required"))
				return
			}

			ctx := WithUserID(r.Context(), userID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, userID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
