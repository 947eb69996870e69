package memory

import (
	"context"
	"sync"
	"time"

	"alcyxob/hoops-trainer/internal/repository"
)

type entry struct {
	value   string
	expires time.Time // zero when the store has no TTL
}

// SlotStore implements repository.SlotStore in process memory.
// Values are lost when the process exits.
type SlotStore struct {
	mu        sync.Mutex
	slots     map[string]entry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// NewSlotStore creates an empty in-memory store whose slots never expire.
func NewSlotStore() *SlotStore {
	return NewExpiringSlotStore(0)
}

// NewExpiringSlotStore creates a store whose slots expire after ttl without
// reads or writes, like the redis session store. ttl <= 0 disables expiry.
func NewExpiringSlotStore(ttl time.Duration) *SlotStore {
	return &SlotStore{slots: make(map[string]entry), ttl: ttl, now: time.Now}
}

var _ repository.SlotStore = (*SlotStore)(nil)

func (s *SlotStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.slots[key]
	if !ok {
		return "", false, nil
	}
	if s.ttl > 0 {
		now := s.now()
		if now.After(e.expires) {
			delete(s.slots, key)
			return "", false, nil
		}
		e.expires = now.Add(s.ttl)
		s.slots[key] = e
	}
	return e.value, true, nil
}

func (s *SlotStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{value: value}
	if s.ttl > 0 {
		now := s.now()
		e.expires = now.Add(s.ttl)
		if now.Sub(s.lastSweep) >= s.ttl {
			s.sweep(now)
			s.lastSweep = now
		}
	}
	s.slots[key] = e
	return nil
}

// sweep drops expired slots. Callers hold s.mu.
func (s *SlotStore) sweep(now time.Time) {
	for k, e := range s.slots {
		if now.After(e.expires) {
			delete(s.slots, k)
		}
	}
}

// Len returns the number of slots held, including expired ones not yet swept.
func (s *SlotStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}
