package middleware

import (
	"net/http"

	"github.com/sodeng/branchops-backend-go/internal/domain/auth"
	"github.com/sodeng/branchops-backend-go/internal/handler/http/response"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if !session.IsAdmin {
			response.HandleError(w, auth.ErrAdminPrivilege)
			return
		}

		next.ServeHTTP(w, r)
	})
}
