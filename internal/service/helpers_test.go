package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"alcyxob/hoops-trainer/internal/repository"
	"alcyxob/hoops-trainer/internal/repository/memory"
)

// flakyStore wraps a memory store and can be told to fail reads or writes.
type flakyStore struct {
	*memory.SlotStore
	mu        sync.Mutex
	failSets  bool
	failGets  bool
	setsCount int
}

func newFlakyStore() *flakyStore {
	return &flakyStore{SlotStore: memory.NewSlotStore()}
}

func (f *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	fail := f.failGets
	f.mu.Unlock()
	if fail {
		return "", false, errors.New("backend unavailable")
	}
	return f.SlotStore.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	fail := f.failSets
	f.setsCount++
	f.mu.Unlock()
	if fail {
		return repository.ErrWriteFailed
	}
	return f.SlotStore.Set(ctx, key, value)
}

func (f *flakyStore) setFailSets(v bool) {
	f.mu.Lock()
	f.failSets = v
	f.mu.Unlock()
}

func (f *flakyStore) setFailGets(v bool) {
	f.mu.Lock()
	f.failGets = v
	f.mu.Unlock()
}

func (f *flakyStore) sets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setsCount
}

// stepClock returns t0, t0+step, t0+2*step, ...
func stepClock(t0 time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := t0
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(step)
		return now
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
