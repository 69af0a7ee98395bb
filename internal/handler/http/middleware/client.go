package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// EmailFromContext returns the email claim of the verified access token.
func EmailFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", client.ErrEmailRequired
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", client.ErrEmailRequired
	}
	return email, nil
}

// RequireClient resolves the caller's client through the gate and stores it
// on the request context. Refusals stop the request.
func RequireClient(gate client.GateService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, err := EmailFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			gateCtx, err := gate.Resolve(r.Context(), email)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(client.WithContext(r.Context(), gateCtx)))
		})
	}
}
