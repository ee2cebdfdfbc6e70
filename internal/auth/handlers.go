package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/EmpoweredVote/roster-backend/internal/apperr"
	"github.com/EmpoweredVote/roster-backend/internal/logutil"
	"github.com/EmpoweredVote/roster-backend/internal/middleware"
	"github.com/EmpoweredVote/roster-backend/internal/utils"
)

type Handler struct {
	svc          *Service
	cookieSecure bool
}

func NewHandler(svc *Service, cookieSecure bool) *Handler {
	return &Handler{svc: svc, cookieSecure: cookieSecure}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type MeResponse struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := utils.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.svc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}

	log := logutil.GetOrDefault(r.Context())
	log.Info().Uint("user.id", user.ID).Msg("user registered")

	w.WriteHeader(http.StatusCreated)
	fmt.Fprintln(w, "User registered successfully")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := utils.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, session, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(session.Token, session.ExpiresAt))
	utils.WriteJSON(w, http.StatusOK, MeResponse{UserID: user.ID, Username: user.Username})
}

// Logout runs behind the session middleware, so the cookie is known to be
// present and valid here.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil {
		apperr.Write(w, r, apperr.ErrUnauthorized)
		return
	}

	if err := h.svc.Logout(r.Context(), cookie.Value); err != nil {
		apperr.Write(w, r, err)
		return
	}

	http.SetCookie(w, h.expiredCookie())
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Logout successful")
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Not logged in", http.StatusUnauthorized)
		return
	}

	user, err := h.svc.User(r.Context(), userID)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, MeResponse{UserID: user.ID, Username: user.Username})
}

func (h *Handler) sessionCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cookieSecure,
	}
}

func (h *Handler) expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cookieSecure,
	}
}
