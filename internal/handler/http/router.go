package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
	"github.com/lastnext24/lastnext24-backend-go/internal/handler/http/middleware"
	"github.com/lastnext24/lastnext24-backend-go/internal/handler/http/response"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/jwt"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Session      SessionHandler
	Report       ReportHandler
	Organization OrganizationHandler
	Aggregation  AggregationHandler
	Chat         ChatHandler
	Summarize    SummarizeHandler
	Transcribe   TranscribeHandler
	Health       HealthHandler
	Events       EventsHandler
}

type RouterOptions struct {
	Logger      *slog.Logger
	CORSOrigins []string
	// FilesDir, when set, is served read-only under /files for local audio blobs
	FilesDir string
}

func NewRouter(jwtService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, "Method not allowed")
	})

	if opts.FilesDir != "" {
		r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(opts.FilesDir))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health.Health)
		r.Post("/chat", h.Chat.Chat)
		r.Post("/summarize", h.Summarize.Summarize)
		r.Post("/transcribe", h.Transcribe.Transcribe)
		r.Post("/transcribe-demo", h.Transcribe.Demo)

		r.Route("/v1", func(r chi.Router) {
			r.Get("/events", h.Events.Stream)

			// One subrouter per prefix: a second Route/Mount on the same
			// prefix replaces the first.
			r.Route("/session", func(r chi.Router) {
				r.Post("/", h.Session.Create)
				r.Group(func(r chi.Router) {
					r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
					r.Use(middleware.AuthRequired(jwtService))
					r.Get("/", h.Session.Get)
					r.Delete("/", h.Session.End)
					r.Post("/sse-token", h.Session.SSEToken)
				})
			})

			r.Route("/organization", func(r chi.Router) {
				r.Get("/users", h.Organization.ListUsers)
				r.Get("/users/{id}", h.Organization.GetUser)
				r.Get("/users/{id}/direct-reports", h.Organization.DirectReports)
				r.Get("/users/{id}/team", h.Organization.Team)
				r.Get("/users/{id}/manager", h.Organization.Manager)
				r.Get("/teams/{teamID}/projects", h.Organization.TeamProjects)
				r.Group(func(r chi.Router) {
					r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
					r.Use(middleware.AuthRequired(jwtService))
					r.With(middleware.RequirePermission(user.PermissionOrgViewTree)).
						Get("/tree", h.Organization.Tree)
				})
			})

			// Requires a session
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService))

				r.Route("/reports", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionReportCreate)).Post("/", h.Report.Create)
					r.With(middleware.RequirePermission(user.PermissionReportViewOwn)).Get("/", h.Report.List)
					r.Get("/stats", h.Report.Stats)
					r.Get("/visible", h.Report.Visible)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionReportViewTeam))
						r.Get("/team", h.Report.Team)
					})

					// CTO only
					r.With(middleware.RequirePermission(user.PermissionStorageClear)).Delete("/", h.Report.Clear)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.Report.GetByID)
						r.Get("/audio-url", h.Report.AudioURL)
						r.Group(func(r chi.Router) {
							r.Use(middleware.RequirePermission(user.PermissionReportEditOwn))
							r.Put("/", h.Report.Update)
							r.Delete("/", h.Report.Delete)
						})
					})
				})

				r.Route("/aggregations", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTeamAggregate))
					r.Post("/", h.Aggregation.Aggregate)
					r.Post("/format", h.Aggregation.Format)
				})
			})
		})
	})

	return r
}
