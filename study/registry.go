package study

import (
	"sync"
	"time"

	"github.com/flashapp/flash-api/apperr"
	"github.com/flashapp/flash-api/notify"
	"github.com/google/uuid"
)

const (
	// EmptyCourseTTL mirrors the delayed navigate-back the UI performs when
	// a course has no cards to study.
	EmptyCourseTTL = 3 * time.Second

	// IdleTTL reaps sessions whose owner walked away.
	IdleTTL = 30 * time.Minute
)

// Registry owns the live study sessions. Sessions for empty courses expire on
// a short fuse, active ones on an idle timeout; both run through the injected
// clock so tests control time.
type Registry struct {
	mu       sync.Mutex
	clock    notify.Clock
	sessions map[string]*Session
	timers   map[string]notify.Timer
}

func NewRegistry(clock notify.Clock) *Registry {
	return &Registry{
		clock:    clock,
		sessions: make(map[string]*Session),
		timers:   make(map[string]notify.Timer),
	}
}

// Start snapshots the given cards into a new session. For an empty snapshot
// exactly one removal is scheduled after EmptyCourseTTL.
func (r *Registry) Start(userID uint, courseID string, cards []Card) *Session {
	s := NewSession(uuid.NewString(), userID, courseID, cards)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s

	ttl := IdleTTL
	if s.Empty() {
		ttl = EmptyCourseTTL
	}
	r.timers[s.ID] = r.clock.AfterFunc(ttl, func() { r.Close(s.ID) })
	return s
}

// Get returns the caller's session. A session owned by another user renders
// as not found, the same as an expired one.
func (r *Registry) Get(sessionID string, userID uint) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	if s.UserID != userID {
		return nil, apperr.ErrForbidden
	}

	// Touching a live session restarts its idle timer. Empty sessions keep
	// their short fuse.
	if !s.Empty() {
		if t := r.timers[sessionID]; t != nil {
			t.Stop()
		}
		r.timers[sessionID] = r.clock.AfterFunc(IdleTTL, func() { r.Close(sessionID) })
	}
	return s, nil
}

// Close discards a session and cancels its pending expiry.
func (r *Registry) Close(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.timers[sessionID]; ok && t != nil {
		t.Stop()
	}
	delete(r.timers, sessionID)
	delete(r.sessions, sessionID)
}
