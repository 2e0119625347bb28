// Package study implements the flip-card study navigator: a fixed snapshot of
// a course's flashcards, a cursor into it, and a flip state. Navigation never
// touches the database; the snapshot taken at session start is never
// refreshed, even if the course changes underneath it.
package study

import "sync"

// Card is the immutable slice of a flashcard the navigator needs.
type Card struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Session is the ephemeral traversal state for one user over one course.
type Session struct {
	ID       string
	UserID   uint
	CourseID string

	mu      sync.Mutex
	cards   []Card
	index   int
	flipped bool
}

func NewSession(id string, userID uint, courseID string, cards []Card) *Session {
	return &Session{ID: id, UserID: userID, CourseID: courseID, cards: cards}
}

// Empty reports whether the snapshot has no cards.
func (s *Session) Empty() bool {
	return len(s.cards) == 0
}

// Next advances the cursor and resets the flip state. At the last card it is
// a no-op and returns false.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index >= len(s.cards)-1 {
		return false
	}
	s.index++
	s.flipped = false
	return true
}

// Previous moves the cursor back and resets the flip state. At the first card
// it is a no-op and returns false.
func (s *Session) Previous() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index <= 0 {
		return false
	}
	s.index--
	s.flipped = false
	return true
}

// Flip toggles between question and answer without moving the cursor.
func (s *Session) Flip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cards) == 0 {
		return
	}
	s.flipped = !s.flipped
}

// View is the client-facing snapshot of the navigator state.
type View struct {
	SessionID   string `json:"session_id"`
	CourseID    string `json:"course_id"`
	Empty       bool   `json:"empty"`
	Position    int    `json:"position,omitempty"` // 1-based, for the "Q.n" label
	Total       int    `json:"total"`
	CardID      string `json:"card_id,omitempty"`
	Side        string `json:"side,omitempty"` // "question" or "answer"
	Text        string `json:"text,omitempty"`
	CanNext     bool   `json:"can_next"`
	CanPrevious bool   `json:"can_previous"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		SessionID: s.ID,
		CourseID:  s.CourseID,
		Total:     len(s.cards),
	}
	if len(s.cards) == 0 {
		v.Empty = true
		return v
	}

	card := s.cards[s.index]
	v.Position = s.index + 1
	v.CardID = card.ID
	if s.flipped {
		v.Side = "answer"
		v.Text = card.Answer
	} else {
		v.Side = "question"
		v.Text = card.Question
	}
	v.CanNext = s.index < len(s.cards)-1
	v.CanPrevious = s.index > 0
	return v
}
