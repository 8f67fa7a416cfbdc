package state

import (
	"sync"
	"time"
)

// State represents the conversational state of a chat
type State string

const (
	// StateNormal is the normal state
	StateNormal State = "normal"
	// StateAddingItems is the state when the user is sending pantry items
	StateAddingItems State = "adding_items"
)

// stateTimeout is how long a non-normal state survives without activity
const stateTimeout = 10 * time.Minute

// ChatState represents the state of a chat with its timestamp
type ChatState struct {
	State     State
	Timestamp time.Time
}

// Manager manages chat states
type Manager struct {
	states map[int64]ChatState
	mu     sync.RWMutex
}

// New creates a new state manager
func New() *Manager {
	return &Manager{
		states: make(map[int64]ChatState),
	}
}

// SetState sets the state for a chat
func (m *Manager) SetState(chatID int64, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[chatID] = ChatState{
		State:     state,
		Timestamp: time.Now(),
	}
}

// GetState gets the state for a chat. Stale states expire back to normal.
func (m *Manager) GetState(chatID int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[chatID]
	if !ok {
		return StateNormal
	}
	if time.Since(state.Timestamp) > stateTimeout {
		delete(m.states, chatID)
		return StateNormal
	}
	return state.State
}

// ClearState clears the state for a chat
func (m *Manager) ClearState(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, chatID)
}
