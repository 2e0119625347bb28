// Package notify implements the transient banner notifications the product
// shows after mutations. At most one notification is visible per user; a new
// one replaces the old and restarts the fixed dismissal window.
package notify

import (
	"sync"
	"time"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// DismissAfter is the fixed auto-dismiss window.
const DismissAfter = 3 * time.Second

type Notification struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Center holds the single visible notification for one user.
type Center struct {
	mu      sync.Mutex
	clock   Clock
	ttl     time.Duration
	current *Notification
	timer   Timer
}

func NewCenter(clock Clock, ttl time.Duration) *Center {
	return &Center{clock: clock, ttl: ttl}
}

// Push replaces any visible notification and restarts the dismissal timer.
func (c *Center) Push(kind Kind, message string) Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	n := Notification{Kind: kind, Message: message}
	c.current = &n
	c.timer = c.clock.AfterFunc(c.ttl, func() { c.dismiss(&n) })
	return n
}

// dismiss clears the notification only if it is still the visible one.
func (c *Center) dismiss(n *Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == n {
		c.current = nil
		c.timer = nil
	}
}

// Current returns the visible notification, or nil after dismissal.
func (c *Center) Current() *Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Hub hands out one Center per user.
type Hub struct {
	mu      sync.Mutex
	clock   Clock
	ttl     time.Duration
	centers map[uint]*Center
}

func NewHub(clock Clock) *Hub {
	return &Hub{clock: clock, ttl: DismissAfter, centers: make(map[uint]*Center)}
}

func (h *Hub) center(userID uint) *Center {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.centers[userID]
	if !ok {
		c = NewCenter(h.clock, h.ttl)
		h.centers[userID] = c
	}
	return c
}

func (h *Hub) Push(userID uint, kind Kind, message string) Notification {
	return h.center(userID).Push(kind, message)
}

func (h *Hub) Current(userID uint) *Notification {
	return h.center(userID).Current()
}
