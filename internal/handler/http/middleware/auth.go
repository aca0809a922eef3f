package middleware

import (
	"net/http"

	"github.com/attendly/attendance-engine-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}
			if employeeID, ok := claims["employee_id"].(string); !ok || employeeID == "" {
				response.Unauthorized(w, "Token carries no employee id")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
