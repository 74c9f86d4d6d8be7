package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/borgespro/golist/internal/auth"
	"github.com/borgespro/golist/internal/store"
)

// RequireAuth validates the bearer token and installs the Principal in
// the request context. Every failure mode answers the same 401, with no
// resource-specific detail.
func RequireAuth(secret []byte, users *store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				unauthorized(w)
				return
			}

			userID, err := auth.ParseToken(secret, tokenString)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := users.GetByID(userID)
			if err != nil || user == nil {
				unauthorized(w)
				return
			}

			p := auth.Principal{UserID: user.ID, Email: user.Email}
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "invalid or missing token"})
}
