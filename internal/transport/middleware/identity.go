package middleware

import (
	"net/http"

	"github.com/FabricioUDB/control-gastos/internal"
	"github.com/FabricioUDB/control-gastos/pkg/logger"
)

// UserContext resolves the caller's identity into the request context.
// Authentication itself happens upstream (gateway, identity provider); by
// the time a request lands here the user ID is an opaque trusted header.
// Requests without one are rejected since every ledger operation is keyed
// by identity.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":401,"message":"missing user identity"}`))
			return
		}

		ctx := internal.ContextWithUserID(r.Context(), userID)
		ctx = logger.With(ctx, "userID", userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
