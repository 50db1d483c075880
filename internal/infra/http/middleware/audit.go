package middleware

import (
	"net/http"
	"strings"

	"github.com/bepulse/advantage-backend/internal/entity"
)

// UserEmailHeader é preenchido pela camada de identidade na frente da API com o email já verificado.
const UserEmailHeader = "X-User-Email"

func Audit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.Header.Get(UserEmailHeader))
		if email == "" {
			next.ServeHTTP(w, r)
			return
		}
		ctx := entity.WithAudit(r.Context(), entity.AuditContext{UserEmail: email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
