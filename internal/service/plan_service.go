package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"alcyxob/hoops-trainer/internal/domain"
	"alcyxob/hoops-trainer/internal/idgen"
	"alcyxob/hoops-trainer/internal/repository"
)

// DefaultPlansKey is the slot holding the plans array.
const DefaultPlansKey = "ht_plans_v1"

// ResolvedPlan is a plan whose items are joined to the library entries the
// principal can see.
type ResolvedPlan struct {
	domain.TrainingPlan
	Resolved []domain.ResolvedItem `json:"resolved"`
	Skipped  int                   `json:"skipped"` // Items whose reference is gone or hidden
}

// PlanService stores ordered training plans. Plans reference library entries by
// id without referential integrity.
type PlanService interface {
	LoadAll(ctx context.Context) []domain.TrainingPlan
	LoadVisible(ctx context.Context, principal string) []domain.TrainingPlan
	Upsert(ctx context.Context, principal string, plan domain.TrainingPlan) ([]domain.TrainingPlan, error)
	Create(ctx context.Context, principal string, plan domain.TrainingPlan) (domain.TrainingPlan, error)
	Remove(ctx context.Context, id string) ([]domain.TrainingPlan, error)
	Get(ctx context.Context, principal, id string) (domain.TrainingPlan, error)
	Resolve(ctx context.Context, principal, id string) (ResolvedPlan, error)

	// Item edits apply to a plan visible to principal and save it as principal.
	AddItem(ctx context.Context, principal, planID string, t domain.UnitType, refID string) (domain.TrainingPlan, error)
	RemoveItem(ctx context.Context, principal, planID, itemID string) (domain.TrainingPlan, error)
	MoveItem(ctx context.Context, principal, planID, itemID string, dir int) (domain.TrainingPlan, error)
}

type planService struct {
	store   repository.SlotStore
	key     string
	library LibraryService
	now     func() time.Time

	mu sync.Mutex
}

// NewPlanService creates a plan service. library is used to resolve plan items;
// now may be nil.
func NewPlanService(store repository.SlotStore, key string, library LibraryService, now func() time.Time) PlanService {
	if key == "" {
		key = DefaultPlansKey
	}
	if now == nil {
		now = time.Now
	}
	return &planService{store: store, key: key, library: library, now: now}
}

func emptyPlans() []domain.TrainingPlan { return []domain.TrainingPlan{} }

func (s *planService) LoadAll(ctx context.Context) []domain.TrainingPlan {
	plans := loadSlot(ctx, s.store, s.key, emptyPlans)
	if plans == nil {
		return emptyPlans()
	}
	return plans
}

func (s *planService) LoadVisible(ctx context.Context, principal string) []domain.TrainingPlan {
	return domain.FilterVisible(s.LoadAll(ctx), principal)
}

// loadForWrite reads the plans for a read-modify-write, reporting backend read
// errors. Callers hold s.mu.
func (s *planService) loadForWrite(ctx context.Context) ([]domain.TrainingPlan, error) {
	plans, err := readSlot(ctx, s.store, s.key, emptyPlans)
	if err != nil {
		return nil, err
	}
	if plans == nil {
		plans = emptyPlans()
	}
	return plans, nil
}

// Upsert saves plan as principal. The first save sets createdAt and updatedAt
// to now; later saves keep the stored createdAt and move updatedAt forward.
// New plans are prepended, existing ones replaced in place.
func (s *planService) Upsert(ctx context.Context, principal string, plan domain.TrainingPlan) ([]domain.TrainingPlan, error) {
	plan, err := preparePlan(principal, plan)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	plans, err := s.loadForWrite(ctx)
	if err != nil {
		return nil, err
	}
	return s.saveLocked(ctx, plans, plan)
}

func preparePlan(principal string, plan domain.TrainingPlan) (domain.TrainingPlan, error) {
	if strings.TrimSpace(plan.ID) == "" {
		return plan, invalid("Plan id is required.")
	}
	plan.Title = strings.TrimSpace(plan.Title)
	plan.Visibility = plan.Visibility.OrDefault()
	plan.Items = withItemIDs(plan.Items)
	if err := validatePlan(plan); err != nil {
		return plan, err
	}
	plan.OwnerID = principal
	return plan, nil
}

// saveLocked stamps the timestamps of plan against plans and persists the
// result. Callers hold s.mu.
func (s *planService) saveLocked(ctx context.Context, plans []domain.TrainingPlan, plan domain.TrainingPlan) ([]domain.TrainingPlan, error) {
	now := s.now().UTC()

	var existing *domain.TrainingPlan
	for i := range plans {
		if plans[i].ID == plan.ID {
			existing = &plans[i]
			break
		}
	}

	switch {
	case existing != nil && !existing.IsNew():
		plan.CreatedAt = existing.CreatedAt
		if !now.After(existing.UpdatedAt) {
			now = existing.UpdatedAt.Add(time.Millisecond)
		}
		plan.UpdatedAt = now
	case plan.IsNew():
		plan.CreatedAt = now
		plan.UpdatedAt = now
	default:
		plan.UpdatedAt = now
	}

	plans = upsertByID(plans, plan, planID)
	if err := saveSlot(ctx, s.store, s.key, plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Create saves plan under a freshly minted id and returns the stored plan.
func (s *planService) Create(ctx context.Context, principal string, plan domain.TrainingPlan) (domain.TrainingPlan, error) {
	plan.ID = idgen.New("plan")
	plan.CreatedAt = time.Time{}
	plans, err := s.Upsert(ctx, principal, plan)
	if err != nil {
		return domain.TrainingPlan{}, err
	}
	return plans[0], nil
}

// Remove drops the plan with id. A missing id is not an error.
func (s *planService) Remove(ctx context.Context, id string) ([]domain.TrainingPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans, err := s.loadForWrite(ctx)
	if err != nil {
		return nil, err
	}
	plans = removeByID(plans, id, planID)
	if err := saveSlot(ctx, s.store, s.key, plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// errUnchanged lets an edit skip the save.
var errUnchanged = errors.New("plan unchanged")

// edit applies fn to the plan with id visible to principal and saves it as
// principal. It returns the stored plan.
func (s *planService) edit(ctx context.Context, principal, id string, fn func(*domain.TrainingPlan) error) (domain.TrainingPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans, err := s.loadForWrite(ctx)
	if err != nil {
		return domain.TrainingPlan{}, err
	}
	idx := -1
	for i := range plans {
		if plans[i].ID == id && domain.IsVisibleTo(plans[i], principal) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.TrainingPlan{}, ErrPlanNotFound
	}

	edited := plans[idx]
	edited.Items = append([]domain.TrainingUnitItem(nil), plans[idx].Items...)
	if err := fn(&edited); err != nil {
		if errors.Is(err, errUnchanged) {
			return plans[idx], nil
		}
		return domain.TrainingPlan{}, err
	}
	if edited, err = preparePlan(principal, edited); err != nil {
		return domain.TrainingPlan{}, err
	}
	saved, err := s.saveLocked(ctx, plans, edited)
	if err != nil {
		return domain.TrainingPlan{}, err
	}
	return saved[idx], nil
}

// AddItem appends a unit referencing refID to the plan.
func (s *planService) AddItem(ctx context.Context, principal, planID string, t domain.UnitType, refID string) (domain.TrainingPlan, error) {
	return s.edit(ctx, principal, planID, func(p *domain.TrainingPlan) error {
		p.AddItem(idgen.New("unit"), t, strings.TrimSpace(refID))
		return nil
	})
}

// RemoveItem drops one unit. Removing the last unit fails validation.
func (s *planService) RemoveItem(ctx context.Context, principal, planID, itemID string) (domain.TrainingPlan, error) {
	return s.edit(ctx, principal, planID, func(p *domain.TrainingPlan) error {
		if !p.RemoveItem(itemID) {
			return ErrPlanItemNotFound
		}
		return nil
	})
}

// MoveItem swaps a unit with its neighbour (dir -1 up, +1 down). Moving past
// either end is a no-op and does not touch updatedAt.
func (s *planService) MoveItem(ctx context.Context, principal, planID, itemID string, dir int) (domain.TrainingPlan, error) {
	if dir != -1 && dir != 1 {
		return domain.TrainingPlan{}, invalid("Direction must be -1 (up) or 1 (down).")
	}
	return s.edit(ctx, principal, planID, func(p *domain.TrainingPlan) error {
		found := false
		for _, it := range p.Items {
			if it.ID == itemID {
				found = true
				break
			}
		}
		if !found {
			return ErrPlanItemNotFound
		}
		if !p.MoveItem(itemID, dir) {
			return errUnchanged
		}
		return nil
	})
}

// Get returns the plan with id if principal can see it.
func (s *planService) Get(ctx context.Context, principal, id string) (domain.TrainingPlan, error) {
	for _, p := range s.LoadVisible(ctx, principal) {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.TrainingPlan{}, ErrPlanNotFound
}

// Resolve joins the plan's items to the library entries visible to principal.
func (s *planService) Resolve(ctx context.Context, principal, id string) (ResolvedPlan, error) {
	plan, err := s.Get(ctx, principal, id)
	if err != nil {
		return ResolvedPlan{}, err
	}
	resolved := plan.Resolve(s.library.LoadVisible(ctx, principal))
	return ResolvedPlan{
		TrainingPlan: plan,
		Resolved:     resolved,
		Skipped:      len(plan.Items) - len(resolved),
	}, nil
}

func planID(p domain.TrainingPlan) string { return p.ID }

// withItemIDs mints ids for items that arrive without one.
func withItemIDs(items []domain.TrainingUnitItem) []domain.TrainingUnitItem {
	out := make([]domain.TrainingUnitItem, len(items))
	copy(out, items)
	for i := range out {
		if strings.TrimSpace(out[i].ID) == "" {
			out[i].ID = idgen.New("unit")
		}
	}
	return out
}

func validatePlan(p domain.TrainingPlan) error {
	if p.Title == "" {
		return invalid("Plan title is required.")
	}
	if !p.Visibility.Valid() {
		return invalid("Visibility must be public or private.")
	}
	if len(p.Items) == 0 {
		return &ValidationError{Reason: "A plan needs at least one item.", Hint: "Add a video or an exercise first."}
	}
	seen := make(map[string]struct{}, len(p.Items))
	for i, it := range p.Items {
		if it.Type != domain.UnitVideo && it.Type != domain.UnitExercise {
			return invalid(fmt.Sprintf("Item %d has unknown type %q.", i+1, it.Type))
		}
		if strings.TrimSpace(it.RefID) == "" {
			return invalid(fmt.Sprintf("Item %d does not reference anything.", i+1))
		}
		if _, dup := seen[it.ID]; dup {
			return invalid(fmt.Sprintf("Item id %q is used twice.", it.ID))
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}
