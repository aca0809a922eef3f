package middleware

import (
	"net/http"

	"github.com/attendly/attendance-engine-go/internal/domain/dayoff"
	"github.com/attendly/attendance-engine-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Missing or invalid token")
			return
		}

		admin, ok := claims["is_admin"].(bool)
		if !admin || !ok {
			response.HandleError(w, dayoff.ErrAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
