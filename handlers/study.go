package handlers

import (
	"net/http"

	"github.com/flashapp/flash-api/apperr"
	"github.com/flashapp/flash-api/middleware"
	"github.com/flashapp/flash-api/notify"
	"github.com/flashapp/flash-api/store"
	"github.com/flashapp/flash-api/study"
)

// StartStudySession snapshots the course's cards oldest-first into a new
// navigator session. The snapshot is never refreshed while the session lives.
func (h *Handler) StartStudySession(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		h.respondError(w, r, apperr.ErrAuthRequired)
		return
	}

	courseID := r.PathValue("courseID")
	flashcards, err := h.Store.ListFlashcards(r.Context(), user.ID, courseID, store.OldestFirst)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	cards := make([]study.Card, 0, len(flashcards))
	for _, f := range flashcards {
		cards = append(cards, study.Card{ID: f.PublicID, Question: f.Question, Answer: f.Answer})
	}

	session := h.Study.Start(user.ID, courseID, cards)

	body := map[string]interface{}{"session": session.View()}
	if session.Empty() {
		// The UI shows this and navigates back; the session itself expires
		// on the same 3 second fuse.
		body["notification"] = h.Notify.Push(user.ID, notify.Error, "You need to add flashcards before studying")
	}
	respondJSON(w, http.StatusCreated, body)
}

func (h *Handler) GetStudySession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.studySession(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"session": session.View()})
}

// NextCard advances the navigator. At the last card it is a no-op; the state
// comes back unchanged rather than erroring, matching the disabled control.
func (h *Handler) NextCard(w http.ResponseWriter, r *http.Request) {
	session, ok := h.studySession(w, r)
	if !ok {
		return
	}
	session.Next()
	respondJSON(w, http.StatusOK, map[string]interface{}{"session": session.View()})
}

func (h *Handler) PreviousCard(w http.ResponseWriter, r *http.Request) {
	session, ok := h.studySession(w, r)
	if !ok {
		return
	}
	session.Previous()
	respondJSON(w, http.StatusOK, map[string]interface{}{"session": session.View()})
}

func (h *Handler) FlipCard(w http.ResponseWriter, r *http.Request) {
	session, ok := h.studySession(w, r)
	if !ok {
		return
	}
	session.Flip()
	respondJSON(w, http.StatusOK, map[string]interface{}{"session": session.View()})
}

func (h *Handler) LeaveStudySession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.studySession(w, r)
	if !ok {
		return
	}
	h.Study.Close(session.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) studySession(w http.ResponseWriter, r *http.Request) (*study.Session, bool) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		h.respondError(w, r, apperr.ErrAuthRequired)
		return nil, false
	}

	session, err := h.Study.Get(r.PathValue("sessionID"), user.ID)
	if err != nil {
		h.respondError(w, r, err)
		return nil, false
	}
	return session, true
}
