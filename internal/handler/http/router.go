package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/ADTrauts/block-on-block-sub003/internal/handler/http/middleware"
	"github.com/ADTrauts/block-on-block-sub003/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	policyHandler PolicyHandler,
	shiftHandler ShiftHandler,
	exceptionHandler ExceptionHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-core"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
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

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/punch-in", attendanceHandler.PunchIn)
				r.Post("/punch-out", attendanceHandler.PunchOut)
				r.Get("/records/{employeePositionID}", attendanceHandler.List)
			})

			r.Route("/shift-assignments", func(r chi.Router) {
				r.Get("/", shiftHandler.ListAssignments)
				r.Get("/upcoming/{employeePositionID}", shiftHandler.UpcomingShifts)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", shiftHandler.Assign)
					r.Patch("/{assignmentID}", shiftHandler.UpdateAssignment)
				})
			})

			// Manager only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)

				r.Route("/policies", func(r chi.Router) {
					r.Get("/", policyHandler.List)
					r.Post("/", policyHandler.Upsert)
				})

				r.Route("/shift-templates", func(r chi.Router) {
					r.Get("/", shiftHandler.ListTemplates)
					r.Post("/", shiftHandler.UpsertTemplate)
					r.Delete("/{templateID}", shiftHandler.ArchiveTemplate)
				})

				r.Route("/exceptions", func(r chi.Router) {
					r.Post("/search", exceptionHandler.List)
					r.Post("/{exceptionID}/resolve", exceptionHandler.Resolve)
				})
			})
		})
	})
	return r
}
