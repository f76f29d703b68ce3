package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/mergington-activities/internal/middleware"
	"github.com/mcoot/mergington-activities/internal/web/handler"
)

// Recovery answers a panicking page handler with the HTML error page
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, r *http.Request, _ any) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		if err := handler.ErrorPage("Something went wrong", "The activity board could not be shown. Please try again.").Render(r.Context(), w); err != nil {
			logger.Warn("failed to render panic page", slog.String("error", err.Error()))
		}
	})
}
