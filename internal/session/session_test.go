package session

import (
	"sync"
	"testing"

	"edahub/domain/trivia"
)

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore()

	state := store.Create()
	if state.ID == "" {
		t.Fatal("created session has no ID")
	}
	if state.CreatedAt.IsZero() {
		t.Error("created session has no creation time")
	}

	got, ok := store.Get(state.ID)
	if !ok || got != state {
		t.Errorf("Get(%q) = %v, %v; want the created session", state.ID, got, ok)
	}

	if _, ok := store.Get("unknown"); ok {
		t.Error("Get on unknown ID reported a session")
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}

func TestGetOrCreate(t *testing.T) {
	store := NewStore()

	first := store.GetOrCreate("")
	if first.ID == "" {
		t.Fatal("GetOrCreate with empty ID did not create a session")
	}

	same := store.GetOrCreate(first.ID)
	if same != first {
		t.Error("GetOrCreate with a known ID created a new session")
	}

	other := store.GetOrCreate("expired-or-bogus")
	if other == first {
		t.Error("GetOrCreate with an unknown ID reused an existing session")
	}
}

func TestGetConcurrentSameSession(t *testing.T) {
	store := NewStore()
	state := store.Create()

	// Two requests carrying the same cookie may look the session up at once.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, ok := store.Get(state.ID); !ok {
					t.Error("session disappeared during concurrent lookups")
					return
				}
			}
		}()
	}
	wg.Wait()

	if state.LastSeen.IsZero() {
		t.Error("LastSeen was never recorded")
	}
}

func TestResetTrivia(t *testing.T) {
	state := &State{
		TriviaScore:     4,
		CurrentQuestion: &trivia.Question{},
	}
	state.ResetTrivia()

	if state.TriviaScore != 0 {
		t.Errorf("score = %d after reset, want 0", state.TriviaScore)
	}
	if state.CurrentQuestion != nil {
		t.Error("pending question survived reset")
	}
}
