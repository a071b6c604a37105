package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/reelist/reelist/internal/common"
	"github.com/reelist/reelist/internal/server/auth"
)

type ctxKey int

const userIDKey ctxKey = iota

// UserIDFromContext returns the user identifier placed in the request context
// by the auth middleware. It is empty only on requests that bypassed it.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// requireAuth rejects requests without a valid "Authorization: Bearer <token>"
// header. On success the verified user id is stored in the request context.
// An unset signing secret makes every protected request fail with a
// configuration error rather than silently accepting unverifiable tokens.
func requireAuth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(secretKey) == 0 {
				writeError(w, common.ErrConfig)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeError(w, common.ErrUnauthorized)
				return
			}

			userID, err := auth.GetUserIDFromToken(token, secretKey)
			if err != nil {
				writeError(w, common.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
