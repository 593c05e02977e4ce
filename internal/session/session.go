// Package session holds the per-user interaction state. It is deliberately
// small: everything except the dataset, role/filter choices, story cursor,
// and trivia progress is recomputed from scratch on every interaction. State
// lives in memory only and needs no durability beyond the session.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"edahub/domain/dataset"
	"edahub/domain/filter"
	"edahub/domain/story"
	"edahub/domain/trivia"
)

// State is one user session. Handlers lock it for the duration of an
// interaction; all fields start at zero/empty.
type State struct {
	ID string

	Frame   *dataset.Frame
	Roles   dataset.RoleSelection
	Filters filter.FilterSet

	StoryCursor story.Cursor

	TriviaScore     int
	CurrentQuestion *trivia.Question

	CreatedAt time.Time
	LastSeen  time.Time

	mu sync.Mutex
}

// Lock serializes interactions within one session.
func (s *State) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *State) Unlock() { s.mu.Unlock() }

// ResetStory returns the story cursor to the first step.
func (s *State) ResetStory() { s.StoryCursor.Restart() }

// touch records activity. Concurrent requests may share a session, so the
// write takes the session's own lock.
func (s *State) touch() {
	s.mu.Lock()
	s.LastSeen = time.Now()
	s.mu.Unlock()
}

// ResetTrivia clears the score and discards any pending question.
func (s *State) ResetTrivia() {
	s.TriviaScore = 0
	s.CurrentQuestion = nil
}

// Store is an in-memory session registry keyed by opaque IDs.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*State)}
}

// Create registers a new session with a fresh ID.
func (st *Store) Create() *State {
	now := time.Now()
	state := &State{
		ID:        uuid.NewString(),
		CreatedAt: now,
		LastSeen:  now,
	}
	st.mu.Lock()
	st.sessions[state.ID] = state
	st.mu.Unlock()
	return state
}

// Get looks up a session by ID.
func (st *Store) Get(id string) (*State, bool) {
	st.mu.RLock()
	state, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		state.touch()
	}
	return state, ok
}

// GetOrCreate returns the session for id, or a fresh one when id is unknown
// or empty.
func (st *Store) GetOrCreate(id string) *State {
	if id != "" {
		if state, ok := st.Get(id); ok {
			return state
		}
	}
	return st.Create()
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
