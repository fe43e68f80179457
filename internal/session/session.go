// Package session holds the per-viewer theme selection.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/cv-site/internal/metrics"
	"github.com/jonathan/cv-site/internal/theme"
)

// CookieName is the cookie carrying the session id.
const CookieName = "cv_session"

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 24 * time.Hour

// Selector holds the active theme key of one viewer.
type Selector struct {
	mu       sync.RWMutex
	key      string
	lastSeen time.Time
}

// NewSelector creates a selector with the given initial key.
func NewSelector(initial string) *Selector {
	return &Selector{key: initial, lastSeen: time.Now()}
}

// Current returns the active theme key as set, which may be unregistered.
func (s *Selector) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key
}

// Set replaces the active key without validating it and reports whether it changed.
func (s *Selector) Set(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == key {
		return false
	}
	s.key = key
	return true
}

// Theme resolves the active key.
func (s *Selector) Theme() theme.Theme {
	return theme.Resolve(s.Current())
}

func (s *Selector) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Selector) idleSince(now time.Time) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return now.Sub(s.lastSeen)
}

// Store keeps selectors in memory keyed by session id.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Selector
}

// NewStore creates a store. A non-positive ttl uses DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Selector),
	}
}

// Lookup returns the live selector for id and refreshes its idle timer. It
// never creates a session.
func (st *Store) Lookup(id string) (*Selector, bool) {
	if id == "" {
		return nil, false
	}
	now := st.now()
	st.mu.RLock()
	sel, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok || sel.idleSince(now) > st.ttl {
		return nil, false
	}
	sel.touch(now)
	return sel, true
}

// Acquire returns the selector for id. An unknown or empty id creates a new
// session whose initial key comes from queryTheme; the query is ignored for
// existing sessions. The returned id is the one to store in the cookie.
func (st *Store) Acquire(id, queryTheme string) (string, *Selector, bool) {
	if sel, ok := st.Lookup(id); ok {
		return id, sel, false
	}

	now := st.now()
	sel := NewSelector(theme.InitialKey(queryTheme))
	sel.lastSeen = now
	newID := uuid.New().String()

	st.mu.Lock()
	if id != "" {
		delete(st.sessions, id)
	}
	st.sessions[newID] = sel
	count := len(st.sessions)
	st.mu.Unlock()

	metrics.ActiveSessions.Set(float64(count))
	return newID, sel, true
}

// Len returns the number of sessions held.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than the ttl and returns how many were removed.
func (st *Store) Sweep() int {
	now := st.now()
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, sel := range st.sessions {
		if sel.idleSince(now) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	metrics.ActiveSessions.Set(float64(len(st.sessions)))
	return removed
}

// FromRequest reads the session id cookie, returning "" when absent.
func FromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// Cookie builds the session cookie for id.
func (st *Store) Cookie(id, path string) *http.Cookie {
	if path == "" {
		path = "/"
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     path,
		MaxAge:   int(st.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
