package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashapp/flash-api/store"
)

func listCourses(t *testing.T, env *testEnv) []store.CourseSummary {
	t.Helper()
	rec := env.do(http.MethodGet, "/api/courses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Courses []store.CourseSummary `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.Courses
}

func TestCourseLifecycle(t *testing.T) {
	env := newTestEnv(t)

	courseID := env.createCourse("Biology")
	env.createFlashcard(courseID, "q", "a")

	courses := listCourses(t, env)
	require.Len(t, courses, 1)
	assert.Equal(t, "Biology", courses[0].Name)
	assert.Equal(t, int64(1), courses[0].CardCount)

	rec := env.do(http.MethodDelete, "/api/courses/"+courseID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, listCourses(t, env))
}

func TestCreateCourseRequiresName(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/courses", map[string]string{"name": "   "})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, listCourses(t, env))
}

func TestCoursesAreScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	courseID := env.createCourse("Mine")

	env.signup("other@email.com", "password123")
	assert.Empty(t, listCourses(t, env))

	rec := env.do(http.MethodGet, "/api/courses/"+courseID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodDelete, "/api/courses/"+courseID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCourseRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)
	env.cookie = nil

	rec := env.do(http.MethodGet, "/api/courses", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
