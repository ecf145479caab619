package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryEntry pairs a session payload with its expiry deadline.
type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. It matches the
// volatile single-process model of the default deployment: sessions
// vanish on restart together with the rest of the state.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	secure   bool
}

// NewMemoryStore creates an in-process session store.
func NewMemoryStore(secureCookies bool) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      DefaultTTL,
		secure:   secureCookies,
	}
}

// Create generates a new session id, stores the payload, and sets the
// session cookie on the response.
func (s *MemoryStore) Create(_ context.Context, w http.ResponseWriter, data *Data) (string, error) {
	id := uuid.NewString()
	data.CreatedAt = time.Now()

	s.mu.Lock()
	s.sessions[id] = memoryEntry{data: *data, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()

	setCookie(w, id, s.ttl, s.secure)
	return id, nil
}

// Get retrieves session data using the session id from the request
// cookie. Expired sessions are dropped lazily.
func (s *MemoryStore) Get(_ context.Context, r *http.Request) (*Data, error) {
	id := cookieID(r)
	if id == "" {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, nil
	}

	data := entry.data
	return &data, nil
}

// Destroy removes the session and clears the cookie.
func (s *MemoryStore) Destroy(_ context.Context, w http.ResponseWriter, r *http.Request) error {
	if id := cookieID(r); id != "" {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
	}

	clearCookie(w)
	return nil
}
