package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/flashapp/flash-api/apperr"
	"github.com/flashapp/flash-api/middleware"
	"github.com/flashapp/flash-api/notify"
	"github.com/flashapp/flash-api/utils"
)

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		h.respondError(w, r, apperr.ErrAuthRequired)
		return
	}

	profile, err := h.Store.GetProfile(r.Context(), user.ID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"profile": profile})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		h.respondError(w, r, apperr.ErrAuthRequired)
		return
	}

	var req struct {
		Username string `json:"username"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		h.Notify.Push(user.ID, notify.Error, "Username is required")
		h.respondError(w, r, apperr.Validation("username", "username is required"))
		return
	}

	profile, err := h.Store.UpsertProfile(r.Context(), user.ID, req.Username)
	if err != nil {
		h.Notify.Push(user.ID, notify.Error, "Failed to save profile")
		h.respondError(w, r, err)
		return
	}

	n := h.Notify.Push(user.ID, notify.Success, "Profile saved")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"profile":      profile,
		"notification": n,
	})
}

// UploadAvatar validates the file entirely before touching either remote
// collaborator: wrong content type or an oversized file never leaves the
// process. The displayed avatar changes only after both the storage write and
// the profile update succeed.
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		h.respondError(w, r, apperr.ErrAuthRequired)
		return
	}

	// One extra KiB so a file just over the limit parses and is rejected
	// with a validation error instead of a broken multipart read.
	r.Body = http.MaxBytesReader(w, r.Body, utils.MaxAvatarBytes+1024)
	if err := r.ParseMultipartForm(utils.MaxAvatarBytes + 1024); err != nil {
		h.Notify.Push(user.ID, notify.Error, "Avatar must be an image up to 5 MB")
		h.respondError(w, r, apperr.Validation("avatar", "file exceeds the 5 MB limit"))
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		h.respondError(w, r, apperr.Validation("avatar", "an avatar file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !utils.IsImageContentType(contentType) {
		h.Notify.Push(user.ID, notify.Error, "Avatar must be an image")
		h.respondError(w, r, apperr.Validation("avatar", "file must be an image"))
		return
	}
	if header.Size > utils.MaxAvatarBytes {
		h.Notify.Push(user.ID, notify.Error, "Avatar must be an image up to 5 MB")
		h.respondError(w, r, apperr.Validation("avatar", "file exceeds the 5 MB limit"))
		return
	}

	key := utils.AvatarKey(user.ID, time.Now(), utils.AvatarExt(header.Filename, contentType))
	url, err := h.Blob.Put(r.Context(), key, contentType, file, header.Size)
	if err != nil {
		h.Notify.Push(user.ID, notify.Error, "Failed to upload avatar")
		h.respondError(w, r, err)
		return
	}

	profile, err := h.Store.UpdateAvatarURL(r.Context(), user.ID, url)
	if err != nil {
		h.Notify.Push(user.ID, notify.Error, "Failed to save avatar")
		h.respondError(w, r, err)
		return
	}

	n := h.Notify.Push(user.ID, notify.Success, "Avatar updated")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"profile":      profile,
		"notification": n,
	})
}

// GetNotification returns the currently visible transient notification.
func (h *Handler) GetNotification(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		h.respondError(w, r, apperr.ErrAuthRequired)
		return
	}

	n := h.Notify.Current(user.ID)
	if n == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"notification": n})
}
