package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/mergington-activities/internal/middleware"
	"github.com/mcoot/mergington-activities/internal/observability"
)

// Metrics records request counts and latency labelled by route template,
// so /activities/{name}/signup is one series regardless of the activity.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := middleware.NewResponseWriter(w)

		next.ServeHTTP(wrapped, r)

		observability.ObserveHTTPRequest(r.Method, routeTemplate(r), wrapped.Status(), time.Since(start))
	})
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "unmatched"
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return "unmatched"
	}
	return tpl
}
