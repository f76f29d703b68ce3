package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/mergington-activities/internal/api/apierr"
	"github.com/mcoot/mergington-activities/internal/api/response"
	"github.com/mcoot/mergington-activities/internal/services/registry"
)

// ActivityHandler handles listing and the open signup path
type ActivityHandler struct {
	registry *registry.Service
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(registry *registry.Service) *ActivityHandler {
	return &ActivityHandler{
		registry: registry,
	}
}

// List handles GET /activities
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	activities, err := h.registry.List(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ActivitiesFromModel(activities))
}

// Signup handles POST /activities/{name}/signup?email=
func (h *ActivityHandler) Signup(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	email := r.URL.Query().Get("email")

	msg, err := h.registry.Signup(r.Context(), name, email)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.Message(w, msg)
}

// Unregister handles DELETE /activities/{name}/unregister?email=
func (h *ActivityHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	email := r.URL.Query().Get("email")

	msg, err := h.registry.Unregister(r.Context(), name, email)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.Message(w, msg)
}
