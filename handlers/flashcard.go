package handlers

import (
	"net/http"
	"strings"

	"github.com/flashapp/flash-api/apperr"
	"github.com/flashapp/flash-api/middleware"
	"github.com/flashapp/flash-api/notify"
	"github.com/flashapp/flash-api/store"
)

// ListFlashcards returns a course's cards. The editor asks for newest first
// (the default), the study view for oldest first via ?order=asc.
func (h *Handler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		h.respondError(w, r, apperr.ErrAuthRequired)
		return
	}

	order := store.NewestFirst
	if r.URL.Query().Get("order") == string(store.OldestFirst) {
		order = store.OldestFirst
	}

	flashcards, err := h.Store.ListFlashcards(r.Context(), user.ID, r.PathValue("courseID"), order)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"flashcards": flashcards})
}

func (h *Handler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		h.respondError(w, r, apperr.ErrAuthRequired)
		return
	}

	var req struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	req.Question = strings.TrimSpace(req.Question)
	req.Answer = strings.TrimSpace(req.Answer)
	if req.Question == "" || req.Answer == "" {
		// No store call is made for invalid input.
		h.Notify.Push(user.ID, notify.Error, "Both question and answer are required")
		h.respondError(w, r, apperr.Validation("flashcard", "both question and answer are required"))
		return
	}

	flashcard, err := h.Store.CreateFlashcard(r.Context(), user.ID, r.PathValue("courseID"), req.Question, req.Answer)
	if err != nil {
		h.Notify.Push(user.ID, notify.Error, "Failed to add flashcard")
		h.respondError(w, r, err)
		return
	}

	n := h.Notify.Push(user.ID, notify.Success, "Flashcard added successfully!")
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"flashcard":    flashcard,
		"notification": n,
	})
}

func (h *Handler) DeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		h.respondError(w, r, apperr.ErrAuthRequired)
		return
	}

	err := h.Store.DeleteFlashcard(r.Context(), user.ID, r.PathValue("courseID"), r.PathValue("flashcardID"))
	if err != nil {
		h.Notify.Push(user.ID, notify.Error, "Failed to delete flashcard")
		h.respondError(w, r, err)
		return
	}

	n := h.Notify.Push(user.ID, notify.Success, "Flashcard deleted")
	respondJSON(w, http.StatusOK, map[string]interface{}{"notification": n})
}
