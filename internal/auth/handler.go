package auth

import (
	"encoding/json"
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

type authResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserView `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Register(dto)
	if err != nil {
		h.Logger.Error("Register: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("Register: organisation created",
		"organisation_id", result.User.OrganisationID,
		"user_id", result.User.ID)

	h.WriteJSON(w, http.StatusCreated, authResponse{
		Message: "Organisation and admin user created successfully",
		Token:   result.Token,
		User:    result.User,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Login(dto)
	if err != nil {
		h.Logger.Error("Login: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    result.User,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.Service.Logout(sess); err != nil {
		h.Logger.Error("Logout: service error", "error", err, "user_id", sess.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// AuthMiddleware derives the tenant context from the bearer token and
// attaches it to the request. Every protected call re-verifies; nothing is
// cached between requests.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.Logger.Warn("auth middleware: missing bearer token", "path", r.URL.Path)
			h.WriteError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		sess, err := h.Service.SessionFromToken(token)
		if err != nil {
			h.Logger.Warn("auth middleware: token rejected", "error", err, "path", r.URL.Path)
			h.HandleServiceError(w, err)
			return
		}

		ctx := logger.With(r.Context(),
			"user_id", sess.UserID,
			"organisation_id", sess.OrganisationID)
		ctx = internal.ContextWithSession(ctx, sess)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
