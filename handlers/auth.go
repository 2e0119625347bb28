package handlers

import (
	"net/http"
	"strings"

	"github.com/flashapp/flash-api/apperr"
	"github.com/flashapp/flash-api/auth"
	"github.com/flashapp/flash-api/middleware"
)

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := h.Validate.Struct(req); err != nil {
		h.respondError(w, r, apperr.Validation("credentials", "a valid email and a password of at least 8 characters are required"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	user, err := h.Store.CreateUser(r.Context(), req.Email, hash)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	token, err := auth.CreateToken(user.ID, []byte(h.Config.JWTSecret), h.Config.SessionTTL)
	if err != nil {
		h.Log.Error().Err(err).Msg("token generation failed")
		h.respondError(w, r, err)
		return
	}
	auth.SetSessionCookie(w, token, h.Config.CookieDomain, h.Config.SessionTTL)

	h.Log.Info().Uint("user_id", user.ID).Msg("user signed up")
	respondJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, err := h.Store.GetUserByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		// One message for both cases so login probes learn nothing.
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid email or password"})
		return
	}

	token, err := auth.CreateToken(user.ID, []byte(h.Config.JWTSecret), h.Config.SessionTTL)
	if err != nil {
		h.Log.Error().Err(err).Msg("token generation failed")
		h.respondError(w, r, err)
		return
	}
	auth.SetSessionCookie(w, token, h.Config.CookieDomain, h.Config.SessionTTL)

	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.Config.CookieDomain)
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		h.respondError(w, r, apperr.ErrAuthRequired)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
