package team

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

func (h *Handler) teamID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Warn("invalid team id", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid team ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionOrFail(w, r)
	if !ok {
		return
	}

	teams, err := h.Service.ListTeams(sess)
	if err != nil {
		h.Logger.Error("ListTeams: service error", "error", err, "organisation_id", sess.OrganisationID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, teams)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionOrFail(w, r)
	if !ok {
		return
	}

	id, ok := h.teamID(w, r)
	if !ok {
		return
	}

	t, err := h.Service.GetTeam(sess, id)
	if err != nil {
		h.Logger.Error("GetTeam: service error", "error", err, "team_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionOrFail(w, r)
	if !ok {
		return
	}

	var dto TeamDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateTeam: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.CreateTeam(sess, dto)
	if err != nil {
		h.Logger.Error("CreateTeam: service error", "error", err, "organisation_id", sess.OrganisationID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionOrFail(w, r)
	if !ok {
		return
	}

	id, ok := h.teamID(w, r)
	if !ok {
		return
	}

	var dto TeamDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateTeam: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.UpdateTeam(sess, id, dto)
	if err != nil {
		h.Logger.Error("UpdateTeam: service error", "error", err, "team_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionOrFail(w, r)
	if !ok {
		return
	}

	id, ok := h.teamID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteTeam(sess, id); err != nil {
		h.Logger.Error("DeleteTeam: service error", "error", err, "team_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Team deleted successfully"})
}

func (h *Handler) AssignEmployee(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionOrFail(w, r)
	if !ok {
		return
	}

	var dto AssignmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AssignEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.AssignEmployee(sess, dto); err != nil {
		h.Logger.Error("AssignEmployee: service error", "error", err,
			"employee_id", dto.EmployeeID, "team_id", dto.TeamID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Employee assigned to team successfully"})
}

func (h *Handler) RemoveEmployee(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionOrFail(w, r)
	if !ok {
		return
	}

	var dto AssignmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("RemoveEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.RemoveEmployee(sess, dto); err != nil {
		h.Logger.Error("RemoveEmployee: service error", "error", err,
			"employee_id", dto.EmployeeID, "team_id", dto.TeamID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Employee removed from team successfully"})
}
