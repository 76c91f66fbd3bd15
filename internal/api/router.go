package api

import (
	"net/http"

	"github.com/St1cky1/pomodoro-service/internal/api/handlers"
	"github.com/St1cky1/pomodoro-service/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

type Services struct {
	Tasks    *usecase.TaskService
	Sessions *usecase.SessionService
	Summary  *usecase.SummaryService
	Audit    *usecase.AuditService
}

type Options struct {
	AllowedOrigins []string
	// Healthz монтируется на /healthz (grpc-gateway), nil - не монтируется
	Healthz http.Handler
	Logger  logrus.FieldLogger
}

func NewRouter(services Services, opts Options) *chi.Mux {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	taskHandler := handlers.NewTaskHandler(services.Tasks, log)
	sessionHandler := handlers.NewSessionHandler(services.Sessions, log)
	summaryHandler := handlers.NewSummaryHandler(services.Summary, log)
	auditHandler := handlers.NewAuditHandler(services.Audit, log)

	if opts.Healthz != nil {
		r.Handle("/healthz", opts.Healthz)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.ListTasks)
			r.Post("/", taskHandler.CreateTask)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.GetTask)
				r.Patch("/", taskHandler.UpdateTask)
				r.Delete("/", taskHandler.DeleteTask)
			})
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessionHandler.ListSessions)
			r.Post("/", sessionHandler.StartSession)
			r.Get("/{id}", sessionHandler.GetSession)
			r.Patch("/{id}/complete", sessionHandler.CompleteSession)
		})

		r.Get("/summary", summaryHandler.GetSummary)
		r.Get("/audit/{entityType}/{id}", auditHandler.ListAudit)
	})

	return r
}
