package handlers

import (
	"net/http"
	"strings"

	"github.com/flashapp/flash-api/apperr"
	"github.com/flashapp/flash-api/middleware"
	"github.com/flashapp/flash-api/notify"
)

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		h.respondError(w, r, apperr.ErrAuthRequired)
		return
	}

	courses, err := h.Store.ListCourses(r.Context(), user.ID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"courses": courses})
}

func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		h.respondError(w, r, apperr.ErrAuthRequired)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.Notify.Push(user.ID, notify.Error, "Course name is required")
		h.respondError(w, r, apperr.Validation("name", "course name is required"))
		return
	}

	course, err := h.Store.CreateCourse(r.Context(), user.ID, req.Name)
	if err != nil {
		h.Notify.Push(user.ID, notify.Error, "Failed to create course")
		h.respondError(w, r, err)
		return
	}

	n := h.Notify.Push(user.ID, notify.Success, "Course created successfully!")
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"course":       course,
		"notification": n,
	})
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		h.respondError(w, r, apperr.ErrAuthRequired)
		return
	}

	courseID := r.PathValue("courseID")
	course, err := h.Store.GetCourse(r.Context(), user.ID, courseID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"course": course})
}

func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		h.respondError(w, r, apperr.ErrAuthRequired)
		return
	}

	courseID := r.PathValue("courseID")
	if err := h.Store.DeleteCourse(r.Context(), user.ID, courseID); err != nil {
		h.Notify.Push(user.ID, notify.Error, "Failed to delete course")
		h.respondError(w, r, err)
		return
	}

	n := h.Notify.Push(user.ID, notify.Success, "Course deleted")
	respondJSON(w, http.StatusOK, map[string]interface{}{"notification": n})
}
