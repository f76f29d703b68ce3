package web

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/mergington-activities/internal/services/registry"
	"github.com/mcoot/mergington-activities/internal/web/handler"
	"github.com/mcoot/mergington-activities/internal/web/middleware"
)

//go:embed static
var embeddedStatic embed.FS

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger          *slog.Logger
	RegistryService *registry.Service
	StaticDir       string // Path to static files directory; embedded files when empty
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	r.Use(middleware.Recovery(cfg.Logger))

	// Create handlers
	boardHandler := handler.NewBoardHandler(cfg.RegistryService, cfg.Logger)

	// Static files. The index is served directly since http.FileServer
	// redirects any path ending in /index.html.
	static := staticFS(cfg.StaticDir)
	r.Handle(handler.IndexPath, handler.StaticFile(static, "index.html")).Methods(http.MethodGet, http.MethodHead)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(static)))

	r.HandleFunc("/", handler.Home).Methods(http.MethodGet)
	r.HandleFunc("/board", boardHandler.View).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(handler.NotFound)

	return r
}

func staticFS(dir string) http.FileSystem {
	if dir != "" {
		return http.Dir(dir)
	}
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
