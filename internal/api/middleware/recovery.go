package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/mergington-activities/internal/api/apierr"
	"github.com/mcoot/mergington-activities/internal/middleware"
)

// Recovery answers a panicking API handler with the JSON INTERNAL_ERROR body
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
