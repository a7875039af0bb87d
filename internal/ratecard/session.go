package ratecard

import (
	"sync"
	"time"
)

// Session owns the rate card of one edit session. It is the single writer of
// the card: callers get copies and replace the whole card on Load.
type Session struct {
	mu       sync.RWMutex
	card     *Card
	loadedAt time.Time
	now      func() time.Time
}

func NewSession() *Session {
	return &Session{now: time.Now}
}

// Load replaces the session card with a copy of c.
func (s *Session) Load(c Card) {
	cp := c.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.card = &cp
	s.loadedAt = s.now()
}

// Card returns a copy of the loaded card, or nil before the first Load.
func (s *Session) Card() *Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.card == nil {
		return nil
	}
	cp := s.card.Clone()
	return &cp
}

// LoadedAt reports when the card was last loaded; zero before the first Load.
func (s *Session) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// MaterialNames returns the loaded material names and false before Load.
func (s *Session) MaterialNames() ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.card == nil {
		return nil, false
	}
	return s.card.MaterialNames(), true
}

// Reset discards the loaded card.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.card = nil
	s.loadedAt = time.Time{}
}
