package api

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rpupo63/vibe-gallery-backend/models"
	"github.com/rpupo63/vibe-gallery-backend/services"
)

const (
	chatSessionTTL  = 24 * time.Hour
	maxChatSessions = 10000
)

type chatSession struct {
	transcript models.Transcript
	touchedAt  time.Time
}

// chatStore keeps assistant conversations in memory, keyed by session id.
// Idle sessions expire after chatSessionTTL.
type chatStore struct {
	mu       sync.Mutex
	sessions map[string]*chatSession
	now      func() time.Time
}

func newChatStore(now func() time.Time) *chatStore {
	return &chatStore{
		sessions: make(map[string]*chatSession),
		now:      now,
	}
}

// create opens a session holding the greeting.
func (s *chatStore) create() (string, models.Transcript) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()
	if len(s.sessions) >= maxChatSessions {
		s.evictOldestLocked()
	}

	id := uuid.NewString()
	transcript := services.NewTranscript()
	s.sessions[id] = &chatSession{transcript: transcript, touchedAt: s.now()}
	return id, slices.Clone(transcript)
}

func (s *chatStore) get(id string) (models.Transcript, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.liveLocked(id)
	if !ok {
		return nil, false
	}
	return slices.Clone(session.transcript), true
}

// update replaces the transcript of id with fn's result. fn runs under the
// store lock so turns of one session never interleave.
func (s *chatStore) update(id string, fn func(models.Transcript) models.Transcript) (models.Transcript, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.liveLocked(id)
	if !ok {
		return nil, false
	}
	session.transcript = fn(slices.Clone(session.transcript))
	session.touchedAt = s.now()
	return slices.Clone(session.transcript), true
}

func (s *chatStore) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.liveLocked(id); !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

func (s *chatStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *chatStore) liveLocked(id string) (*chatSession, bool) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.now().Sub(session.touchedAt) > chatSessionTTL {
		delete(s.sessions, id)
		return nil, false
	}
	return session, true
}

func (s *chatStore) purgeExpiredLocked() {
	now := s.now()
	for id, session := range s.sessions {
		if now.Sub(session.touchedAt) > chatSessionTTL {
			delete(s.sessions, id)
		}
	}
}

func (s *chatStore) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, session := range s.sessions {
		if oldestID == "" || session.touchedAt.Before(oldest) {
			oldestID, oldest = id, session.touchedAt
		}
	}
	delete(s.sessions, oldestID)
}
