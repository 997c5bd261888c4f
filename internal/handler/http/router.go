package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/sodeng/branchops-backend-go/internal/handler/http/middleware"
	"github.com/sodeng/branchops-backend-go/internal/pkg/jwt"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Roster     RosterHandler
	Report     ReportHandler
	Staff      StaffHandler
}

type RouterOptions struct {
	AllowedOrigins []string
	AppName        string
	Version        string
	Environment    string
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Environment != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", opts.AppName),
		slog.String("version", opts.Version),
		slog.String("env", opts.Environment),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/names", h.Auth.Names)
			// EventSource cannot send headers; the stream authenticates via ?token=.
			r.Get("/stream", h.Auth.Stream)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
				r.Get("/me", h.Auth.Me)
				r.Post("/stream-token", h.Auth.StreamToken)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Get("/shifts/{staffID}/{date}", h.Attendance.GetShiftRecord)

			r.Route("/branches/{branch}", func(r chi.Router) {
				r.Route("/attendance/{date}", func(r chi.Router) {
					r.Get("/", h.Attendance.GetDailySheet)
					r.Post("/", h.Attendance.SaveDailySheet)
				})

				r.Route("/roster", func(r chi.Router) {
					r.Get("/", h.Roster.GetWeek)

					// Admin only
					r.With(middleware.AdminOnly).Put("/", h.Roster.SaveWeek)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)

					r.Post("/payroll/{date}/recompute", h.Attendance.RecomputePayroll)
					r.Get("/reports/monthly", h.Report.GetMonthly)

					r.Route("/staff", func(r chi.Router) {
						r.Get("/", h.Staff.List)
						r.Post("/", h.Staff.Create)
						r.Route("/{id}", func(r chi.Router) {
							r.Get("/", h.Staff.Get)
							r.Put("/", h.Staff.Update)
							r.Delete("/", h.Staff.Delete)
						})
					})
				})
			})
		})
	})
	return r
}
