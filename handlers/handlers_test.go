package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/flashapp/flash-api/apperr"
	"github.com/flashapp/flash-api/config"
	"github.com/flashapp/flash-api/middleware"
	"github.com/flashapp/flash-api/models"
	"github.com/flashapp/flash-api/notify"
	"github.com/flashapp/flash-api/store"
	"github.com/flashapp/flash-api/study"
)

// fakeClock captures scheduled callbacks so tests can drive the dismissal and
// expiry windows by hand.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) notify.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) fireAll() {
	c.mu.Lock()
	timers := c.timers
	c.timers = nil
	c.mu.Unlock()
	for _, t := range timers {
		if !t.stopped {
			t.f()
		}
	}
}

// fakeBlob records uploads; puts counts every call so tests can assert that
// rejected files never reach the store.
type fakeBlob struct {
	mu   sync.Mutex
	puts int
	keys []string
	fail bool
}

func (b *fakeBlob) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.puts++
	if b.fail {
		return "", apperr.Remote("storage", fmt.Errorf("bucket unavailable"))
	}
	b.keys = append(b.keys, key)
	return "https://cdn.test/" + key, nil
}

type testEnv struct {
	t      *testing.T
	h      *Handler
	mux    *http.ServeMux
	clock  *fakeClock
	blob   *fakeBlob
	cookie *http.Cookie
	user   *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Course{},
		&models.Flashcard{},
	))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	clock := &fakeClock{}
	blobStore := &fakeBlob{}
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
	}

	h := New(store.NewGormStore(db), blobStore, notify.NewHub(clock), study.NewRegistry(clock), cfg, zerolog.Nop())
	requireSession := middleware.RequireSession(h.Store, []byte(cfg.JWTSecret), h.Log)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/signup", h.Signup)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/auth/me", requireSession(h.Me))
	mux.HandleFunc("GET /api/courses", requireSession(h.ListCourses))
	mux.HandleFunc("POST /api/courses", requireSession(h.CreateCourse))
	mux.HandleFunc("GET /api/courses/{courseID}", requireSession(h.GetCourse))
	mux.HandleFunc("DELETE /api/courses/{courseID}", requireSession(h.DeleteCourse))
	mux.HandleFunc("GET /api/courses/{courseID}/flashcards", requireSession(h.ListFlashcards))
	mux.HandleFunc("POST /api/courses/{courseID}/flashcards", requireSession(h.CreateFlashcard))
	mux.HandleFunc("DELETE /api/courses/{courseID}/flashcards/{flashcardID}", requireSession(h.DeleteFlashcard))
	mux.HandleFunc("POST /api/courses/{courseID}/study", requireSession(h.StartStudySession))
	mux.HandleFunc("GET /api/study/{sessionID}", requireSession(h.GetStudySession))
	mux.HandleFunc("POST /api/study/{sessionID}/next", requireSession(h.NextCard))
	mux.HandleFunc("POST /api/study/{sessionID}/previous", requireSession(h.PreviousCard))
	mux.HandleFunc("POST /api/study/{sessionID}/flip", requireSession(h.FlipCard))
	mux.HandleFunc("DELETE /api/study/{sessionID}", requireSession(h.LeaveStudySession))
	mux.HandleFunc("GET /api/profile", requireSession(h.GetProfile))
	mux.HandleFunc("PUT /api/profile", requireSession(h.UpdateProfile))
	mux.HandleFunc("POST /api/profile/avatar", requireSession(h.UploadAvatar))
	mux.HandleFunc("GET /api/notifications", requireSession(h.GetNotification))

	env := &testEnv{t: t, h: h, mux: mux, clock: clock, blob: blobStore}
	env.signup("roth@email.com", "password123")
	return env
}

// signup registers a user and keeps the session cookie for later requests.
func (e *testEnv) signup(email, password string) {
	e.t.Helper()

	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())

	res := rec.Result()
	for _, c := range res.Cookies() {
		if c.Name == "auth_token" {
			e.cookie = c
		}
	}
	require.NotNil(e.t, e.cookie)

	var out struct {
		User models.User `json:"user"`
	}
	require.NoError(e.t, json.Unmarshal(rec.Body.Bytes(), &out))
	e.user = &out.User
}

// do performs an authenticated JSON request against the test mux.
func (e *testEnv) do(method, target string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, target, reader)
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) createCourse(name string) string {
	e.t.Helper()

	rec := e.do(http.MethodPost, "/api/courses", map[string]string{"name": name})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		Course models.Course `json:"course"`
	}
	require.NoError(e.t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.Course.PublicID
}

func (e *testEnv) createFlashcard(courseID, question, answer string) string {
	e.t.Helper()

	rec := e.do(http.MethodPost, "/api/courses/"+courseID+"/flashcards", map[string]string{
		"question": question,
		"answer":   answer,
	})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		Flashcard models.Flashcard `json:"flashcard"`
	}
	require.NoError(e.t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.Flashcard.PublicID
}
