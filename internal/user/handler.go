package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/itempad/itempad/internal/auth"
)

// Handler exposes HTTP endpoints for account operations
// (register / login / logout / me).
type Handler struct {
	svc      *UserService
	codec    *auth.TokenCodec
	resolver *auth.Resolver
	logger   *zap.SugaredLogger
}

func NewHandler(svc *UserService, codec *auth.TokenCodec, resolver *auth.Resolver, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, codec: codec, resolver: resolver, logger: logger}
}

// RegisterRequest is the request body for the register endpoint.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	u, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		var ve ValidationError
		switch {
		case errors.As(err, &ve):
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Error()})
		case errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrEmailTaken):
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			h.logger.Errorw("register failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "an error occurred, please try again"})
		}
		return
	}
	h.writeJSON(w, http.StatusCreated, u.Public())
}

// LoginRequest is the request body for the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	u, err := h.svc.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid username or password"})
			return
		}
		h.logger.Errorw("login failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "an error occurred, please try again"})
		return
	}
	token, err := h.codec.Issue(u.ID, u.Username)
	if err != nil {
		h.logger.Errorw("token issue failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "an error occurred, please try again"})
		return
	}
	auth.WriteToken(w, token, h.codec.TTL())
	h.writeJSON(w, http.StatusOK, u.Public())
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearToken(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the resolved identity of the current session.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ident := h.resolver.Resolve(r)
	if ident == nil {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}
	h.writeJSON(w, http.StatusOK, ident)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
