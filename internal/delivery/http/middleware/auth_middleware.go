package middleware

import (
	"context"
	"net/http"
	"time"

	"merkato-backend/internal/domain"
	"merkato-backend/pkg/utils"
)

// AuthMiddleware guards a route: requests without a valid session token get a
// 401. The user placed in the context is built from the token claims alone,
// so authenticated requests cost no extra DB round trip.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := utils.ExtractToken(r)
		if tokenString == "" {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: No token provided")
			return
		}

		claims, err := utils.ValidateSessionToken(tokenString)
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: Invalid token")
			return
		}
		if claims.ExpiresAt.Before(time.Now()) {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: Session expired")
			return
		}

		user := &domain.User{
			ID:    claims.UserID,
			Email: claims.Email,
		}

		ctx := context.WithValue(r.Context(), domain.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the authenticated user set by AuthMiddleware, or
// nil on public routes.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(domain.UserContextKey).(*domain.User)
	return user
}
