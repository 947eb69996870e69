package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"alcyxob/hoops-trainer/internal/logger"
	"alcyxob/hoops-trainer/internal/repository"
)

// loadSlot decodes the JSON value under key into T. Absent, unreadable and
// corrupt slots all yield empty(); the failure is logged, never returned.
// Only read paths may use it: writing back its result after a backend error
// would replace the stored blob.
func loadSlot[T any](ctx context.Context, store repository.SlotStore, key string, empty func() T) T {
	v, err := readSlot(ctx, store, key, empty)
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Failed to read slot, using empty state")
		return empty()
	}
	return v
}

// readSlot is loadSlot for read-modify-write. Absent and corrupt slots still
// yield empty(), but a backend error is returned wrapped in ErrLoadFailed so
// the caller aborts instead of overwriting data it could not see.
func readSlot[T any](ctx context.Context, store repository.SlotStore, key string, empty func() T) (T, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return empty(), fmt.Errorf("%w: %s: %w", ErrLoadFailed, key, err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return empty(), nil
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Corrupt slot, using empty state")
		return empty(), nil
	}
	return v, nil
}

// saveSlot replaces the whole value under key.
func saveSlot(ctx context.Context, store repository.SlotStore, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrPersistFailed, key, err)
	}
	if err := store.Set(ctx, key, string(b)); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Failed to write slot")
		return fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}
	return nil
}
