package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"screenclash/internal/config"
	"screenclash/internal/models"
	"screenclash/internal/security"
	"screenclash/internal/service"
	"screenclash/internal/validation"
)

// AuthHandler handles parent account authentication
type AuthHandler struct {
	authService  *service.AuthService
	oauthConfig  *oauth2.Config
	redirectBase string
}

// NewAuthHandler creates a new auth handler. Google sign-in is enabled
// only when client credentials are configured.
func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	h := &AuthHandler{
		authService:  authService,
		redirectBase: cfg.OAuthRedirectBase,
	}
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		h.oauthConfig = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}
	return h
}

// Register creates a parent account
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err == service.ErrEmailTaken {
		respondWithError(w, http.StatusConflict, "email already taken", "", nil)
		return
	}
	if err != nil {
		if _, ok := err.(validation.ValidationError); ok {
			respondWithValidationError(w, err, "")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to register user", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, user)
}

// Login verifies credentials and sets the session cookie
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	user, session, err := h.authService.Login(req.Email, req.Password)
	if err == service.ErrInvalidCredentials {
		respondWithError(w, http.StatusUnauthorized, "invalid email or password", "", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to log in", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, "session_id", session.ID, session.ExpiresAt))
	respondWithJSON(w, http.StatusOK, user)
}

// Logout removes the session
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil {
		if err := h.authService.Logout(cookie.Value); err != nil {
			respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to log out", err)
			return
		}
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, "session_id"))
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the logged-in parent. Routed behind RequireAuth.
// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "login required", "", nil)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// StartGoogleOAuth begins the Google sign-in flow
// GET /api/auth/google/start
func (h *AuthHandler) StartGoogleOAuth(w http.ResponseWriter, r *http.Request) {
	if h.oauthConfig == nil {
		respondWithError(w, http.StatusBadRequest, "google sign-in not configured", "", nil)
		return
	}

	state := security.GenerateSessionID()
	http.SetCookie(w, security.CreateSessionCookie(r, "oauth_state", state, time.Now().Add(10*time.Minute)))

	cfg := *h.oauthConfig
	cfg.RedirectURL = h.redirectURL()
	http.Redirect(w, r, cfg.AuthCodeURL(state, oauth2.AccessTypeOnline), http.StatusFound)
}

// GoogleOAuthCallback finishes the Google sign-in flow and opens a
// parent session
// GET /api/auth/google/callback
func (h *AuthHandler) GoogleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	if h.oauthConfig == nil {
		respondWithError(w, http.StatusBadRequest, "google sign-in not configured", "", nil)
		return
	}

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != state || code == "" {
		respondWithError(w, http.StatusBadRequest, "invalid oauth state", "", nil)
		return
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, "oauth_state"))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cfg := *h.oauthConfig
	cfg.RedirectURL = h.redirectURL()
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to exchange oauth code", "OAuth exchange failed", err)
		return
	}

	info, err := fetchGoogleUserInfo(ctx, &cfg, token)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "failed to fetch user info", "OAuth userinfo failed", err)
		return
	}

	user, session, err := h.authService.OAuthLogin("google", info.Subject, info.Email, info.Name)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "OAuth login failed", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, "session_id", session.ID, session.ExpiresAt))
	respondWithJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) redirectURL() string {
	return fmt.Sprintf("%s/api/auth/google/callback", h.redirectBase)
}

type googleUserInfo struct {
	Subject string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

func fetchGoogleUserInfo(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token) (*googleUserInfo, error) {
	client := cfg.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	if info.Subject == "" || info.Email == "" {
		return nil, fmt.Errorf("userinfo missing subject or email")
	}
	return &info, nil
}
