package presentation

import (
	"net/http"
	"strings"

	"github.com/RaikyD/wb-shipping-service/internal/auth"
	"github.com/RaikyD/wb-shipping-service/internal/presentation/helpers"
	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// RegisterPublic mounts the routes reachable without a session.
func (h *AuthHandler) RegisterPublic(r chi.Router) {
	r.Post("/auth/login", h.Login)
}

func (h *AuthHandler) Register(r chi.Router) {
	r.Get("/auth/session", h.Session)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	sess, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, sess)
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFrom(r.Context())
	if !ok {
		writeError(w, r, auth.ErrSessionNotFound, nil)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, sess)
}

// RequireSession rejects requests without a live bearer session.
func (h *AuthHandler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			helpers.HttpError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		sess, err := h.svc.Authenticate(r.Context(), token)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), sess)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
