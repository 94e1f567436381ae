package middleware

import (
	"net/http"
	"strings"

	"github.com/maheshsta/corebank/internal/auth"
	"github.com/maheshsta/corebank/internal/handler"
)

// Auth resolves the caller identity from a bearer token and puts it on the
// request context. Everything downstream treats that identity as given.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				handler.RespondAppError(w, handler.ErrMissingToken, nil)
				return
			}

			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				handler.RespondAppError(w, handler.ErrInvalidToken, nil)
				return
			}

			userID, err := auth.ValidateToken(token, secret)
			if err != nil {
				handler.RespondAppError(w, handler.ErrInvalidToken, nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithCaller(r.Context(), userID)))
		})
	}
}
