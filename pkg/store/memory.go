package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"handhistory-server/pkg/hand"
)

// Memory keeps hands in process. Records are copied in and out.
type Memory struct {
	mu    sync.Mutex
	hands map[uuid.UUID][]byte
}

// NewMemory returns an empty in-memory store
func NewMemory() *Memory {
	return &Memory{hands: make(map[uuid.UUID][]byte)}
}

// CreateHand implements Store
func (m *Memory) CreateHand(ctx context.Context, r *hand.Record) (*hand.Record, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.hands[r.ID] = b
	m.mu.Unlock()

	return decodeRecord(b)
}

// GetAllHands implements Store
func (m *Memory) GetAllHands(ctx context.Context) ([]*hand.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]*hand.Record, 0, len(m.hands))
	for _, b := range m.hands {
		r, err := decodeRecord(b)
		if err != nil {
			return nil, err
		}

		records = append(records, r)
	}

	hand.SortByCreatedDesc(records)
	return records, nil
}

// GetHandByID implements Store
func (m *Memory) GetHandByID(ctx context.Context, id uuid.UUID) (*hand.Record, error) {
	m.mu.Lock()
	b, ok := m.hands[id]
	m.mu.Unlock()

	if !ok {
		return nil, ErrNotFound
	}

	return decodeRecord(b)
}

// SetWinnings implements Store
func (m *Memory) SetWinnings(ctx context.Context, id uuid.UUID, winnings map[string]int) (*hand.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.hands[id]
	if !ok {
		return nil, ErrNotFound
	}

	r, err := decodeRecord(b)
	if err != nil {
		return nil, err
	}

	if err := r.SetWinnings(winnings); err != nil {
		return nil, err
	}

	if b, err = json.Marshal(r); err != nil {
		return nil, err
	}

	m.hands[id] = b
	return r, nil
}

func decodeRecord(b []byte) (*hand.Record, error) {
	var r hand.Record
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, err
	}

	return &r, nil
}
