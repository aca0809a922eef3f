package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/attendly/attendance-engine-go/internal/handler/http/middleware"
	"github.com/attendly/attendance-engine-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(jwtService jwt.Service, attendanceHandler AttendanceHandler, dayOffHandler DayOffHandler, eventsHandler EventsHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-engine"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// The stream authenticates with a short-lived token in the query
		// string, not with the access token header.
		r.Get("/events", eventsHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/timeline", attendanceHandler.Timeline)
				r.Get("/stats", attendanceHandler.Stats)
			})

			r.Route("/day-off", func(r chi.Router) {
				r.Post("/", dayOffHandler.Request)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/pending", dayOffHandler.Pending)
					r.Post("/process", dayOffHandler.Process)
				})
			})

			r.Get("/events/token", eventsHandler.GetSSEToken)
		})
	})
	return r
}
