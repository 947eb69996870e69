package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"alcyxob/hoops-trainer/internal/domain"
	"alcyxob/hoops-trainer/internal/idgen"
	"alcyxob/hoops-trainer/internal/platform"
	"alcyxob/hoops-trainer/internal/repository"
)

// DefaultResourcesKey is the slot holding the resources array.
const DefaultResourcesKey = "hoops-trainer-resources"

// ResourceInput is what a user submits to add a resource.
type ResourceInput struct {
	URL           string
	Name          string // Derived from the URL when empty
	Description   string
	ThumbnailURL  string
	FollowerCount string
	IsVerified    bool
	Visibility    domain.Visibility
}

// DetectedResource is the platform and suggested name for a URL.
type DetectedResource struct {
	Platform domain.ResourcePlatform `json:"platform"`
	Name     string                  `json:"name"`
}

// ResourceService stores curated social resources. Unlike the library, updates
// are partial patches.
type ResourceService interface {
	LoadAll(ctx context.Context) []domain.Resource
	LoadVisible(ctx context.Context, principal string) []domain.Resource
	Add(ctx context.Context, principal string, in ResourceInput) (*domain.Resource, error)
	Update(ctx context.Context, id string, patch domain.ResourcePatch) (*domain.Resource, error)
	Remove(ctx context.Context, id string) (bool, error)
	Detect(rawURL string) (DetectedResource, error)
}

type resourceService struct {
	store repository.SlotStore
	key   string
	now   func() time.Time

	mu sync.Mutex
}

// NewResourceService creates a resource service. now may be nil.
func NewResourceService(store repository.SlotStore, key string, now func() time.Time) ResourceService {
	if key == "" {
		key = DefaultResourcesKey
	}
	if now == nil {
		now = time.Now
	}
	return &resourceService{store: store, key: key, now: now}
}

func emptyResources() []domain.Resource { return []domain.Resource{} }

func (s *resourceService) LoadAll(ctx context.Context) []domain.Resource {
	items := loadSlot(ctx, s.store, s.key, emptyResources)
	if items == nil {
		return emptyResources()
	}
	return items
}

// loadForWrite reads the collection for a read-modify-write, reporting backend
// read errors. Callers hold s.mu.
func (s *resourceService) loadForWrite(ctx context.Context) ([]domain.Resource, error) {
	items, err := readSlot(ctx, s.store, s.key, emptyResources)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = emptyResources()
	}
	return items, nil
}

func (s *resourceService) LoadVisible(ctx context.Context, principal string) []domain.Resource {
	return domain.FilterVisible(s.LoadAll(ctx), principal)
}

// Detect classifies a URL. Unsupported platforms are rejected rather than
// stored as unknown.
func (s *resourceService) Detect(rawURL string) (DetectedResource, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return DetectedResource{}, invalid("Resource URL is required.")
	}
	p, ok := platform.DetectResourcePlatform(rawURL)
	if !ok {
		return DetectedResource{}, &ValidationError{
			Reason: "Unsupported platform.",
			Hint:   "Use a YouTube, Instagram or Facebook profile link.",
		}
	}
	return DetectedResource{Platform: p, Name: platform.ExtractResourceName(rawURL, p)}, nil
}

// Add mints id and addedAt and appends the resource. Adding the same URL twice
// creates two resources.
func (s *resourceService) Add(ctx context.Context, principal string, in ResourceInput) (*domain.Resource, error) {
	detected, err := s.Detect(in.URL)
	if err != nil {
		return nil, err
	}
	vis := in.Visibility.OrDefault()
	if !vis.Valid() {
		return nil, invalid("Visibility must be public or private.")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = detected.Name
	}

	now := s.now().UTC()
	res := domain.Resource{
		ID:            idgen.Resource(now),
		Name:          name,
		Platform:      detected.Platform,
		URL:           strings.TrimSpace(in.URL),
		Description:   strings.TrimSpace(in.Description),
		ThumbnailURL:  strings.TrimSpace(in.ThumbnailURL),
		FollowerCount: strings.TrimSpace(in.FollowerCount),
		IsVerified:    in.IsVerified,
		Visibility:    vis,
		OwnerID:       principal,
		AddedAt:       now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadForWrite(ctx)
	if err != nil {
		return nil, err
	}
	items = append(items, res)
	if err := saveSlot(ctx, s.store, s.key, items); err != nil {
		return nil, err
	}
	return &res, nil
}

// Update shallow-merges patch over the resource with id. It returns
// ErrResourceNotFound, a *ValidationError, ErrLoadFailed or ErrPersistFailed; on any error the
// stored collection is unchanged.
func (s *resourceService) Update(ctx context.Context, id string, patch domain.ResourcePatch) (*domain.Resource, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadForWrite(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range items {
		if items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrResourceNotFound
	}

	updated := patch.Apply(items[idx])
	items[idx] = updated
	if err := saveSlot(ctx, s.store, s.key, items); err != nil {
		return nil, err
	}
	return &updated, nil
}

func validatePatch(p domain.ResourcePatch) error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return invalid("Resource name cannot be empty.")
	}
	if p.URL != nil && strings.TrimSpace(*p.URL) == "" {
		return invalid("Resource URL cannot be empty.")
	}
	if p.Platform != nil && !p.Platform.Valid() {
		return &ValidationError{
			Reason: "Unsupported platform.",
			Hint:   "Platform must be youtube, instagram or facebook.",
		}
	}
	if p.Visibility != nil && !p.Visibility.Valid() {
		return invalid("Visibility must be public or private.")
	}
	return nil
}

// Remove reports whether a resource with id existed.
func (s *resourceService) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadForWrite(ctx)
	if err != nil {
		return false, err
	}
	kept := removeByID(items, id, func(r domain.Resource) string { return r.ID })
	if len(kept) == len(items) {
		return false, nil
	}
	if err := saveSlot(ctx, s.store, s.key, kept); err != nil {
		return false, err
	}
	return true, nil
}
