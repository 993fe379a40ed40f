package auth

import (
	"net/http"
	"strings"

	"github.com/prima-crm/prima-crm/internal/platform/httpx"
	"github.com/prima-crm/prima-crm/internal/shared"
)

// Middleware resolves the bearer token into a shared.Actor on the request
// context. Requests without a valid token get the 401 envelope.
func Middleware(service *Service, devMode bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httpx.RespondError(w, httpx.ErrUnauthorized, devMode)
				return
			}
			actor, err := service.Resolve(r.Context(), token)
			if err != nil {
				httpx.RespondError(w, httpx.ErrUnauthorized, devMode)
				return
			}
			next.ServeHTTP(w, r.WithContext(shared.ContextWithActor(r.Context(), actor)))
		})
	}
}
