package service

import (
	"context"
	"strings"
	"sync"

	"alcyxob/hoops-trainer/internal/domain"
	"alcyxob/hoops-trainer/internal/idgen"
	"alcyxob/hoops-trainer/internal/platform"
	"alcyxob/hoops-trainer/internal/repository"
)

// DefaultLibraryKey is the slot holding the {videos, exercises} blob.
const DefaultLibraryKey = "ht_library_v1"

// VideoInput is what a user submits to add a video by URL.
type VideoInput struct {
	URL        string
	Category   string
	Visibility domain.Visibility
}

// ExerciseInput is what a user submits to add a text exercise.
type ExerciseInput struct {
	Title       string
	Description string
	Category    string
	Visibility  domain.Visibility
}

// LibraryService is the content store for videos and exercises. Both
// collections are persisted together as one blob; every mutation rewrites it.
type LibraryService interface {
	LoadAll(ctx context.Context) domain.LibraryState
	LoadVisible(ctx context.Context, principal string) domain.LibraryState
	SaveAll(ctx context.Context, state domain.LibraryState) error

	// Upserts stamp the principal as owner and replace whole records.
	UpsertVideo(ctx context.Context, principal string, item domain.VideoItem) (domain.LibraryState, error)
	UpsertExercise(ctx context.Context, principal string, item domain.ExerciseItem) (domain.LibraryState, error)
	// SetMissingTitle fills in the title of a stored, still untitled video.
	// It reports false without error when the video is gone or already titled.
	SetMissingTitle(ctx context.Context, principal, id, title string) (domain.VideoItem, bool, error)
	RemoveVideo(ctx context.Context, id string) (domain.LibraryState, error)
	RemoveExercise(ctx context.Context, id string) (domain.LibraryState, error)

	AddVideo(ctx context.Context, principal string, in VideoInput) (domain.VideoItem, error)
	AddExercise(ctx context.Context, principal string, in ExerciseInput) (domain.ExerciseItem, error)

	Browse(ctx context.Context, principal string, filter domain.BrowseFilter) domain.LibraryState
	Categories(ctx context.Context, principal string) []string
	Channels(ctx context.Context, principal string) []domain.ChannelInfo
}

// libraryService implements LibraryService.
type libraryService struct {
	store repository.SlotStore
	key   string

	mu sync.Mutex // serializes read-modify-write within this process
}

// NewLibraryService creates a library service on store. An empty key means DefaultLibraryKey.
func NewLibraryService(store repository.SlotStore, key string) LibraryService {
	if key == "" {
		key = DefaultLibraryKey
	}
	return &libraryService{store: store, key: key}
}

// LoadAll returns the full persisted library, or the empty shape.
func (s *libraryService) LoadAll(ctx context.Context) domain.LibraryState {
	return loadSlot(ctx, s.store, s.key, domain.EmptyLibrary).Normalize()
}

// LoadVisible returns the entries principal may see.
func (s *libraryService) LoadVisible(ctx context.Context, principal string) domain.LibraryState {
	return s.LoadAll(ctx).VisibleTo(principal)
}

// SaveAll overwrites the whole library blob. Whatever was stored before is lost.
func (s *libraryService) SaveAll(ctx context.Context, state domain.LibraryState) error {
	return saveSlot(ctx, s.store, s.key, state.Normalize())
}

// loadForWrite reads the library for a read-modify-write. Unlike LoadAll it
// reports backend read errors. Callers hold s.mu.
func (s *libraryService) loadForWrite(ctx context.Context) (domain.LibraryState, error) {
	state, err := readSlot(ctx, s.store, s.key, domain.EmptyLibrary)
	if err != nil {
		return domain.LibraryState{}, err
	}
	return state.Normalize(), nil
}

// mutate applies fn to the stored library under the lock and persists the
// result. Nothing is written when the read fails.
func (s *libraryService) mutate(ctx context.Context, fn func(*domain.LibraryState)) (domain.LibraryState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadForWrite(ctx)
	if err != nil {
		return domain.LibraryState{}, err
	}
	fn(&state)
	if err := s.SaveAll(ctx, state); err != nil {
		return domain.LibraryState{}, err
	}
	return state, nil
}

func prepareVideo(principal string, item domain.VideoItem) (domain.VideoItem, error) {
	if strings.TrimSpace(item.ID) == "" {
		return item, invalid("Video id is required.")
	}
	item.Visibility = item.Visibility.OrDefault()
	if !item.Visibility.Valid() {
		return item, invalid("Visibility must be public or private.")
	}
	if item.Platform == "" {
		item.Platform = platform.DetectVideoPlatform(item.URL)
	}
	item.OwnerID = principal
	return item, nil
}

func (s *libraryService) UpsertVideo(ctx context.Context, principal string, item domain.VideoItem) (domain.LibraryState, error) {
	item, err := prepareVideo(principal, item)
	if err != nil {
		return domain.LibraryState{}, err
	}
	return s.mutate(ctx, func(state *domain.LibraryState) {
		state.Videos = upsertByID(state.Videos, item, videoID)
	})
}

// SetMissingTitle stores title on the video with id, upserting it as
// principal, but only while the video still exists without a title. The check
// and the write happen under the same lock, so a concurrent remove wins.
func (s *libraryService) SetMissingTitle(ctx context.Context, principal, id, title string) (domain.VideoItem, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadForWrite(ctx)
	if err != nil {
		return domain.VideoItem{}, false, err
	}
	current, ok := state.FindVideo(id)
	if !ok || current.Title != "" {
		return current, false, nil
	}
	current.Title = title
	updated, err := prepareVideo(principal, current)
	if err != nil {
		return domain.VideoItem{}, false, err
	}
	state.Videos = upsertByID(state.Videos, updated, videoID)
	if err := s.SaveAll(ctx, state); err != nil {
		return domain.VideoItem{}, false, err
	}
	return updated, true, nil
}

func (s *libraryService) UpsertExercise(ctx context.Context, principal string, item domain.ExerciseItem) (domain.LibraryState, error) {
	if strings.TrimSpace(item.ID) == "" {
		return domain.LibraryState{}, invalid("Exercise id is required.")
	}
	if strings.TrimSpace(item.Title) == "" {
		return domain.LibraryState{}, invalid("Exercise title is required.")
	}
	item.Visibility = item.Visibility.OrDefault()
	if !item.Visibility.Valid() {
		return domain.LibraryState{}, invalid("Visibility must be public or private.")
	}
	item.OwnerID = principal

	return s.mutate(ctx, func(state *domain.LibraryState) {
		state.Exercises = upsertByID(state.Exercises, item, exerciseID)
	})
}

// RemoveVideo drops the video with id. A missing id is not an error.
func (s *libraryService) RemoveVideo(ctx context.Context, id string) (domain.LibraryState, error) {
	return s.mutate(ctx, func(state *domain.LibraryState) {
		state.Videos = removeByID(state.Videos, id, videoID)
	})
}

// RemoveExercise drops the exercise with id. A missing id is not an error.
func (s *libraryService) RemoveExercise(ctx context.Context, id string) (domain.LibraryState, error) {
	return s.mutate(ctx, func(state *domain.LibraryState) {
		state.Exercises = removeByID(state.Exercises, id, exerciseID)
	})
}

func videoID(v domain.VideoItem) string       { return v.ID }
func exerciseID(e domain.ExerciseItem) string { return e.ID }

// AddVideo validates a submitted URL, mints the video id and upserts it.
// YouTube links with an extractable id always map to the same entry.
func (s *libraryService) AddVideo(ctx context.Context, principal string, in VideoInput) (domain.VideoItem, error) {
	rawURL := strings.TrimSpace(in.URL)
	if rawURL == "" {
		return domain.VideoItem{}, invalid("Video URL is required.")
	}

	p := platform.DetectVideoPlatform(rawURL)
	if p == domain.PlatformFacebook {
		if check := platform.ValidateFacebookEmbeddable(rawURL); !check.OK {
			return domain.VideoItem{}, &ValidationError{Reason: check.Reason, Hint: check.Hint}
		}
	}

	item := domain.VideoItem{
		ID:         newVideoID(rawURL, p),
		URL:        rawURL,
		Platform:   p,
		Category:   strings.TrimSpace(in.Category),
		Visibility: in.Visibility,
	}
	state, err := s.UpsertVideo(ctx, principal, item)
	if err != nil {
		return domain.VideoItem{}, err
	}
	saved, _ := state.FindVideo(item.ID)
	return saved, nil
}

func newVideoID(rawURL string, p domain.VideoPlatform) string {
	if p != domain.PlatformYouTube {
		return idgen.New("vid")
	}
	if id, ok := platform.ExtractYouTubeID(rawURL); ok {
		return "yt_" + id
	}
	return idgen.New("yt")
}

func (s *libraryService) AddExercise(ctx context.Context, principal string, in ExerciseInput) (domain.ExerciseItem, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.ExerciseItem{}, invalid("Exercise title is required.")
	}

	item := domain.ExerciseItem{
		ID:          idgen.New("ex"),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Visibility:  in.Visibility,
	}
	state, err := s.UpsertExercise(ctx, principal, item)
	if err != nil {
		return domain.ExerciseItem{}, err
	}
	saved, _ := state.FindExercise(item.ID)
	return saved, nil
}

func (s *libraryService) Browse(ctx context.Context, principal string, filter domain.BrowseFilter) domain.LibraryState {
	return filter.Apply(s.LoadVisible(ctx, principal))
}

func (s *libraryService) Categories(ctx context.Context, principal string) []string {
	return s.LoadVisible(ctx, principal).Categories()
}

func (s *libraryService) Channels(ctx context.Context, principal string) []domain.ChannelInfo {
	return CollectChannels(s.LoadVisible(ctx, principal).Videos)
}

// upsertByID prepends item when its id is new and replaces the existing entry
// in place otherwise.
func upsertByID[T any](items []T, item T, id func(T) string) []T {
	for i := range items {
		if id(items[i]) == id(item) {
			out := make([]T, len(items))
			copy(out, items)
			out[i] = item
			return out
		}
	}
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

func removeByID[T any](items []T, target string, id func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if id(it) != target {
			out = append(out, it)
		}
	}
	return out
}
