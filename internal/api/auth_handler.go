package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rtboard/backend/internal/auth"
	"github.com/rtboard/backend/internal/cache"
	"github.com/rtboard/backend/internal/rt"
)

// AuthHandler handles the login and logout endpoints. Logging in proxies
// the credentials to the upstream RT instance; only a successful
// upstream login yields a dashboard token.
type AuthHandler struct {
	client   *rt.Client
	sessions *auth.SessionStore
	issuer   *auth.TokenIssuer
	cache    *cache.TableCache
	logger   zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(client *rt.Client, sessions *auth.SessionStore, issuer *auth.TokenIssuer, tableCache *cache.TableCache, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		client:   client,
		sessions: sessions,
		issuer:   issuer,
		cache:    tableCache,
		logger:   logger.With().Str("component", "auth").Logger(),
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	User      string    `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HandleLogin handles POST /auth/login. The username is fixed by
// configuration; the request carries only the password.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}

	if err := h.client.Login(r.Context(), req.Password); err != nil {
		h.logger.Warn().Err(err).Msg("upstream login failed")
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	// A fresh identity means no stale tables.
	h.cache.Clear()

	session := h.sessions.Create(h.client.Username())
	token, err := h.issuer.Issue(session)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to issue token")
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		User:      session.User,
		ExpiresAt: session.ExpiresAt,
	})
}

// HandleLogout handles POST /auth/logout. The upstream logout is best
// effort; the local session and cache go away regardless.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.client.Logout(r.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("upstream logout failed")
	}

	if session, ok := auth.SessionFromContext(r.Context()); ok {
		h.sessions.Delete(session.ID)
	}
	h.cache.Clear()

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
