package player

import (
	"sync"
	"time"

	"github.com/penwyp/go-track-replay/internal/core/model"
)

// StateManager manages UI state in a thread-safe manner
type StateManager struct {
	mu sync.RWMutex

	interactionState model.InteractionState
	statusExpires    time.Time
}

// NewStateManager creates a new StateManager instance
func NewStateManager(sourcePath string) *StateManager {
	return &StateManager{
		interactionState: model.InteractionState{SourcePath: sourcePath},
	}
}

// GetInteractionState returns a copy of the current interaction state
func (sm *StateManager) GetInteractionState() model.InteractionState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.interactionState
}

// UpdateInteractionState updates specific fields of interaction state
func (sm *StateManager) UpdateInteractionState(updateFunc func(*model.InteractionState)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	updateFunc(&sm.interactionState)
}

// SetStatus shows message in the footer until now+ttl
func (sm *StateManager) SetStatus(message string, now time.Time, ttl time.Duration) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.interactionState.StatusMessage = message
	sm.statusExpires = now.Add(ttl)
}

// ExpireStatus clears a status message whose time is up. Reports whether it cleared one.
func (sm *StateManager) ExpireStatus(now time.Time) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.interactionState.StatusMessage == "" || now.Before(sm.statusExpires) {
		return false
	}
	sm.interactionState.StatusMessage = ""
	return true
}
