package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUserID  ctxKey = "utilisateurID"
	CtxIsAdmin ctxKey = "estAdmin"
)

func MiddlewareAuthentification(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token absent", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ParseAndValidate(raw)
		if err != nil {
			http.Error(w, "Token invalide", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, CtxIsAdmin, claims.EstAdmin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ExigerAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := r.Context().Value(CtxIsAdmin)
		if ok, _ := v.(bool); !ok {
			http.Error(w, "Accès réservé aux administrateurs", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDDepuisContexte extrait l'identifiant utilisateur posé par le middleware.
func UserIDDepuisContexte(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(CtxUserID).(uint)
	return id, ok
}
