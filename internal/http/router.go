package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jaekwang-park/todo-summary/internal/http/handler"
	"github.com/jaekwang-park/todo-summary/internal/metrics"
	"github.com/jaekwang-park/todo-summary/internal/service"
	"github.com/jaekwang-park/todo-summary/web"
)

type Services struct {
	Todos     *service.TodoService
	Summaries *service.SummaryService
	// Auth is nil unless the Cognito sign-in proxy is configured.
	Auth *service.AuthService
}

// NewRouter registers all routes. authn guards the todo and summarize routes;
// everything else is public.
func NewRouter(svcs Services, authn func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteError(w, http.StatusNotFound, "NOT_FOUND", "endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	health := handler.NewHealthHandler()
	r.Get("/", health.Root)
	r.Get("/health", health.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Get("/app", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/app/", http.StatusMovedPermanently)
	})
	r.Handle("/app/*", http.StripPrefix("/app", web.Handler()))

	if svcs.Auth != nil {
		auth := handler.NewAuthHandler(svcs.Auth)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", auth.SignUp)
			r.Post("/confirm", auth.ConfirmSignUp)
			r.Post("/login", auth.Login)
			r.Post("/refresh", auth.Refresh)
		})
	}

	todos := handler.NewTodoHandler(svcs.Todos)
	summaries := handler.NewSummaryHandler(svcs.Summaries)
	r.Group(func(r chi.Router) {
		r.Use(authn)

		r.Get("/todos", todos.List)
		r.Post("/todos", todos.Create)
		r.Get("/todos/{id}", todos.Get)
		r.Put("/todos/{id}", todos.Update)
		r.Patch("/todos/{id}", todos.SetCompleted)
		r.Delete("/todos/{id}", todos.Delete)

		r.Post("/summarize", summaries.SummarizeAll)
		r.Post("/summarize/{id}", summaries.SummarizeOne)
	})

	return r
}
