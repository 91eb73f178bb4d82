package handler

import (
	"encoding/json"
	"net/http"

	"github.com/wardro8e/api/internal/application/auth"
	"github.com/wardro8e/api/internal/domain"
	"github.com/wardro8e/api/internal/transport/http/middleware"
)

// AuthHandler handles brand signup, login and identity endpoints.
type AuthHandler struct {
	svc          auth.Service
	secureCookie bool
}

func NewAuthHandler(svc auth.Service, secureCookie bool) *AuthHandler {
	return &AuthHandler{svc: svc, secureCookie: secureCookie}
}

// Signup starts brand registration: validates the form, stores a pending
// record and emails a one-time code. The code never appears in the response.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.RequestSignup(r.Context(), req); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "OTP sent to your email"})
}

// Verify consumes the one-time code and provisions the account and brand.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifySignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	brand, err := h.svc.VerifySignup(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, VerifyEnvelope{Message: "Brand registered successfully", Brand: brand})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	identity, err := h.svc.WhoAmI(r.Context(), result.Account.AccountID, result.Account.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.setAuthCookie(w, result.Bearer, 86400)
	writeJSON(w, http.StatusOK, AuthEnvelope{
		Message:      "Login successful",
		AccessToken:  result.Bearer,
		RefreshToken: result.RefreshToken,
		User:         identity,
	})
}

// Logout disables the account's sessions and clears the auth cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		if err := h.svc.Logout(r.Context(), claims.AccountID); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	h.setAuthCookie(w, "", -1)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Logged out"})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "refresh_token required")
		return
	}
	result, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.setAuthCookie(w, result.Bearer, 86400)
	writeJSON(w, http.StatusOK, AuthEnvelope{
		AccessToken:  result.Bearer,
		RefreshToken: result.RefreshToken,
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	identity, err := h.svc.WhoAmI(r.Context(), claims.AccountID, claims.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, identity)
}

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
