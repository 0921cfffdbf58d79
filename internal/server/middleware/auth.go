package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/careerforge/careerforge/internal/auth"
)

// Auth authenticates requests by bearer token. The verified company id and
// email land in the request context; anything else is a 401. Verification
// failures are logged with their reason and never panic.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractBearer(r.Header.Get("Authorization"))
			if token == "" {
				http.Error(w, `{"title":"Unauthorized","status":401,"detail":"authorization token is required"}`, http.StatusUnauthorized)
				return
			}

			ctx, ok := authenticate(r.Context(), token, jwtSecret)
			if !ok {
				http.Error(w, `{"title":"Unauthorized","status":401,"detail":"invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(ctx context.Context, tokenStr, secret string) (context.Context, bool) {
	claims, err := auth.ValidateToken(secret, tokenStr)
	if err != nil {
		log.Debug().Err(err).Msg("auth: token rejected")
		return ctx, false
	}

	companyID, err := claims.CompanyID()
	if err != nil {
		log.Debug().Err(err).Msg("auth: token carried malformed company id")
		return ctx, false
	}

	ctx = context.WithValue(ctx, ContextKeyCompanyID, companyID)
	ctx = context.WithValue(ctx, ContextKeyEmail, claims.Email)
	return ctx, true
}
