package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/auraluxe/auraluxe-backend/api/responses"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
	"github.com/auraluxe/auraluxe-backend/pkg/logger"
)

const cartTokenHeader = "X-Cart-Token"

const maxCartTokenLength = 128

// RequireCartToken enforces the client-held cart token on cart and checkout
// routes. The token is opaque to the server; it only namespaces storage.
func RequireCartToken(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(cartTokenHeader))
			if token == "" {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "cart token is required").
						WithDetails(map[string]string{"header": cartTokenHeader}))
				return
			}
			if len(token) > maxCartTokenLength {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "cart token is too long"))
				return
			}

			w.Header().Set(cartTokenHeader, token)

			ctx := context.WithValue(r.Context(), ctxCartToken, token)
			if logg != nil {
				ctx = logg.WithCartToken(ctx, token)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
