// ABOUTME: Snapshot encoding for the persisted user state
// ABOUTME: The whole state is one JSON document, rewritten after each mutation
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/harperreed/opslog/models"
)

// Encode serializes the state for a backend.
func Encode(state *models.UserState) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot and restores the derived invariants.
func Decode(data []byte) (*models.UserState, error) {
	state := models.NewUserState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	if state.Entries == nil {
		state.Entries = make(map[string]models.DailyRecord)
	}
	if state.Contacts == nil {
		state.Contacts = []models.Contact{}
	}
	normalizeEntries(state.Entries)
	return state, nil
}

// MemoryBackend keeps the snapshot in memory.
type MemoryBackend struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNoSnapshot
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryBackend) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

// Saves returns how many snapshots have been written.
func (m *MemoryBackend) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
