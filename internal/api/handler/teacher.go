package handler

import (
	"net/http"
	"strings"

	"github.com/mcoot/mergington-activities/internal/api/apierr"
	"github.com/mcoot/mergington-activities/internal/api/request"
	"github.com/mcoot/mergington-activities/internal/api/response"
	"github.com/mcoot/mergington-activities/internal/services/auth"
	"github.com/mcoot/mergington-activities/internal/services/registry"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 64 << 10

// TeacherHandler handles login and the teacher-gated signup path
type TeacherHandler struct {
	authService *auth.Service
	registry    *registry.Service
}

// NewTeacherHandler creates a new teacher handler
func NewTeacherHandler(authService *auth.Service, registry *registry.Service) *TeacherHandler {
	return &TeacherHandler{
		authService: authService,
		registry:    registry,
	}
}

// Login handles POST /login
func (h *TeacherHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeJSON(w, r, &req, request.LoginFields); err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := h.authService.Login(r.Context(), req.Username, req.Password); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.Success(w, "Login successful")
}

// Register handles POST /register
func (h *TeacherHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.StudentRequest
	if err := decodeJSON(w, r, &req, request.StudentFields); err != nil {
		apierr.WriteError(w, err)
		return
	}

	msg, err := h.registry.RegisterStudent(r.Context(), req.Username, req.Password, req.ActivityName, req.Email)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.Success(w, msg)
}

// Unregister handles POST /unregister
func (h *TeacherHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	var req request.StudentRequest
	if err := decodeJSON(w, r, &req, request.StudentFields); err != nil {
		apierr.WriteError(w, err)
		return
	}

	msg, err := h.registry.UnregisterStudent(r.Context(), req.Username, req.Password, req.ActivityName, req.Email)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.Success(w, msg)
}

// decodeJSON rejects bodies that are malformed or leave out a required field.
// These checks run before any credential check.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, required []string) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	missing, err := request.Decode(r.Body, dst, required...)
	if err != nil {
		return apierr.NewInvalidRequestError("invalid request body")
	}
	if len(missing) > 0 {
		return apierr.NewInvalidRequestError("missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}
