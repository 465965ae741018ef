package audit

import (
	"log/slog"
	"net/http"

	"github.com/andikarahman/hr-management/internal"
	"github.com/andikarahman/hr-management/internal/transport"
	"github.com/andikarahman/hr-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// ListLogs returns every audit entry for the caller's organisation,
// newest first.
func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.Logger.Error("ListLogs: session not found in context")
		h.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	entries, err := h.Service.ListForOrganisation(sess.OrganisationID)
	if err != nil {
		h.Logger.Error("ListLogs: service error", "error", err, "organisation_id", sess.OrganisationID)
		h.HandleServiceError(w, err)
		return
	}

	if entries == nil {
		entries = []*Entry{}
	}

	h.WriteJSON(w, http.StatusOK, entries)
}
