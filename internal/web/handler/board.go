package handler

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/a-h/templ"

	"github.com/mcoot/mergington-activities/internal/model"
	"github.com/mcoot/mergington-activities/internal/services/registry"
	"github.com/mcoot/mergington-activities/internal/web/templates/layout"
	"github.com/mcoot/mergington-activities/internal/web/templates/pages"
)

// BoardHandler renders the activity board
type BoardHandler struct {
	registry *registry.Service
	logger   *slog.Logger
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(registry *registry.Service, logger *slog.Logger) *BoardHandler {
	return &BoardHandler{
		registry: registry,
		logger:   logger,
	}
}

// View handles GET /board[?category=]
func (h *BoardHandler) View(w http.ResponseWriter, r *http.Request) {
	activities, err := h.registry.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list activities", slog.String("error", err.Error()))
		renderError(w, r, http.StatusInternalServerError, "Something went wrong", "The activity list could not be loaded.")
		return
	}

	category := r.URL.Query().Get("category")

	data := pages.BoardData{
		PageData:   layout.PageData{Title: "Activity Board"},
		Activities: filterByCategory(activities, category),
		Categories: categories(activities),
		Category:   category,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Board(data).Render(r.Context(), w); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render board", slog.String("error", err.Error()))
	}
}

func filterByCategory(activities []*model.Activity, category string) []*model.Activity {
	if category == "" {
		return activities
	}
	var out []*model.Activity
	for _, a := range activities {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

func categories(activities []*model.Activity) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range activities {
		if a.Category != "" && !seen[a.Category] {
			seen[a.Category] = true
			out = append(out, a.Category)
		}
	}
	sort.Strings(out)
	return out
}

func renderError(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = ErrorPage(title, message).Render(r.Context(), w)
}

// ErrorPage builds the HTML error page
func ErrorPage(title, message string) templ.Component {
	return pages.Error(pages.ErrorData{
		PageData: layout.PageData{Title: title},
		Message:  message,
	})
}
