package employee

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/andikarahman/hr-management/internal"
	"github.com/andikarahman/hr-management/internal/transport"
	"github.com/andikarahman/hr-management/pkg/logger"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) sessionOrFail(w http.ResponseWriter, r *http.Request) (internal.Session, bool) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.Logger.Error("session not found in context", "path", r.URL.Path)
		h.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return internal.Session{}, false
	}
	return sess, true
}

func (h *Handler) employeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Warn("invalid employee id", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionOrFail(w, r)
	if !ok {
		return
	}

	employees, err := h.Service.ListEmployees(sess)
	if err != nil {
		h.Logger.Error("ListEmployees: service error", "error", err, "organisation_id", sess.OrganisationID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionOrFail(w, r)
	if !ok {
		return
	}

	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	emp, err := h.Service.GetEmployee(sess, id)
	if err != nil {
		h.Logger.Error("GetEmployee: service error", "error", err, "employee_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionOrFail(w, r)
	if !ok {
		return
	}

	var dto EmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.CreateEmployee(sess, dto)
	if err != nil {
		h.Logger.Error("CreateEmployee: service error", "error", err, "organisation_id", sess.OrganisationID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, emp)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionOrFail(w, r)
	if !ok {
		return
	}

	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	var dto EmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.UpdateEmployee(sess, id, dto)
	if err != nil {
		h.Logger.Error("UpdateEmployee: service error", "error", err, "employee_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionOrFail(w, r)
	if !ok {
		return
	}

	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteEmployee(sess, id); err != nil {
		h.Logger.Error("DeleteEmployee: service error", "error", err, "employee_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Employee deleted successfully"})
}
