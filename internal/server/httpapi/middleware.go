package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/portfolio/internal/common"
	"github.com/dmitrijs2005/portfolio/internal/server/auth"
)

// Protect requires a valid bearer token for a user that still exists and
// attaches that user's current identity to the request context.
func (a *API) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			fail(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix))
		if token == "" {
			fail(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		id, err := a.users.Authenticate(r.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, common.ErrInvalidToken):
			fail(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		case errors.Is(err, common.ErrorNotFound):
			fail(w, http.StatusUnauthorized, "Not authorized, user not found")
			return
		default:
			a.log.Error(r.Context(), "authenticate", "error", err)
			fail(w, http.StatusInternalServerError, "Server error")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
	})
}

// RequireAdmin must run after Protect.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFromContext(r.Context())
		if !ok || !id.IsAdmin() {
			fail(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
