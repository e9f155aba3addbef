package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Tamoora69/abdeen-barber-shop/internal/appointments/feed"
)

// Session is one customer's in-flight booking flow. All field access goes
// through Manager under the session mutex.
type Session struct {
	ID string

	mu         sync.Mutex
	step       Step
	draft      Draft
	available  []string
	slotTaken  bool
	epoch      uint64
	lastActive time.Time

	sub *feed.Subscription
}

// touch must be called with s.mu held.
func (s *Session) touch() {
	s.lastActive = time.Now()
}

// State is an immutable snapshot of a session, safe to serialize after the
// session lock is released.
type State struct {
	SessionID      string   `json:"session_id"`
	Step           string   `json:"step"`
	Draft          Draft    `json:"draft"`
	AvailableTimes []string `json:"available_times,omitempty"`
	SlotTaken      bool     `json:"slot_taken,omitempty"`
}

// snapshot must be called with s.mu held.
func (s *Session) snapshot() State {
	state := State{
		SessionID: s.ID,
		Step:      s.step.String(),
		Draft:     s.draft,
		SlotTaken: s.slotTaken,
	}
	if len(s.available) > 0 {
		state.AvailableTimes = append([]string(nil), s.available...)
	}
	return state
}

// removeAvailable must be called with s.mu held.
func (s *Session) removeAvailable(t string) bool {
	for i, slot := range s.available {
		if slot == t {
			s.available = append(s.available[:i], s.available[i+1:]...)
			return true
		}
	}
	return false
}

// Store holds live wizard sessions keyed by id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

func (st *Store) New() *Session {
	session := &Session{
		ID:         uuid.New().String(),
		step:       StepSelectingService,
		lastActive: time.Now(),
	}

	st.mu.Lock()
	st.sessions[session.ID] = session
	st.mu.Unlock()
	return session
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	session, ok := st.sessions[id]
	return session, ok
}

func (st *Store) Remove(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	session, ok := st.sessions[id]
	if ok {
		delete(st.sessions, id)
	}
	return session, ok
}

// Expired removes and returns every session idle for longer than ttl.
func (st *Store) Expired(ttl time.Duration) []*Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := time.Now()
	var expired []*Session
	for id, session := range st.sessions {
		session.mu.Lock()
		idle := now.Sub(session.lastActive)
		session.mu.Unlock()
		if idle > ttl {
			expired = append(expired, session)
			delete(st.sessions, id)
		}
	}
	return expired
}

// Drain removes and returns every live session.
func (st *Store) Drain() []*Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	drained := make([]*Session, 0, len(st.sessions))
	for id, session := range st.sessions {
		drained = append(drained, session)
		delete(st.sessions, id)
	}
	return drained
}
