package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"xplaindfile/internal/handlers"
	"xplaindfile/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	UploadService service.UploadService
	ChatService   service.ChatService
	ResetService  service.ResetService
	IndexHTML     string // Embedded HTML content
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	uploadHandler := handlers.NewUploadHandler(deps.UploadService)
	chatHandler := handlers.NewChatHandler(deps.ChatService)
	resetHandler := handlers.NewResetHandler(deps.ResetService)
	healthHandler := handlers.NewHealthHandler()

	r.Method(http.MethodGet, "/api/health", healthHandler)
	r.Method(http.MethodPost, "/upload", uploadHandler)
	r.Method(http.MethodPost, "/chat", chatHandler)
	r.Method(http.MethodPost, "/reset", resetHandler)

	// Serve the single page frontend at root
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(deps.IndexHTML))
	})

	return r
}
