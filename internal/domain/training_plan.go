// internal/domain/training_plan.go
package domain

import "time"

// UnitType says which library collection a plan item refers to.
type UnitType string

const (
	UnitVideo    UnitType = "video"
	UnitExercise UnitType = "exercise"
)

// TrainingUnitItem is an ordered reference inside a plan. RefID may dangle after
// the referenced video or exercise is deleted.
type TrainingUnitItem struct {
	ID              string   `json:"id"` // Unique within the owning plan
	Type            UnitType `json:"type"`
	RefID           string   `json:"refId"` // ID of a VideoItem or ExerciseItem
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// TrainingPlan is an ordered, named collection of training units.
type TrainingPlan struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Items       []TrainingUnitItem `json:"items"`     // Order is meaningful
	CreatedAt   time.Time          `json:"createdAt"` // Set once on first save
	UpdatedAt   time.Time          `json:"updatedAt"` // Advanced on every save
	Visibility  Visibility         `json:"visibility"`
	OwnerID     string             `json:"ownerId,omitempty"`
}

func (p TrainingPlan) GetVisibility() Visibility { return p.Visibility }
func (p TrainingPlan) GetOwnerID() string        { return p.OwnerID }

// IsNew reports whether the plan has never been saved.
func (p TrainingPlan) IsNew() bool {
	return p.CreatedAt.IsZero()
}

// AddItem appends a new unit with the given id.
func (p *TrainingPlan) AddItem(id string, t UnitType, refID string) TrainingUnitItem {
	it := TrainingUnitItem{ID: id, Type: t, RefID: refID}
	p.Items = append(p.Items, it)
	return it
}

// RemoveItem drops the unit with id. It reports whether anything was removed.
func (p *TrainingPlan) RemoveItem(id string) bool {
	for i, it := range p.Items {
		if it.ID == id {
			p.Items = append(p.Items[:i:i], p.Items[i+1:]...)
			return true
		}
	}
	return false
}

// MoveItem moves the unit with id one step in direction dir (-1 up, +1 down).
// Unknown ids and moves past either end leave the order unchanged.
func (p *TrainingPlan) MoveItem(id string, dir int) bool {
	for i, it := range p.Items {
		if it.ID == id {
			return p.MoveItemAt(i, dir)
		}
	}
	return false
}

// MoveItemAt swaps the unit at index with its neighbour in direction dir.
// Out-of-range moves are no-ops.
func (p *TrainingPlan) MoveItemAt(index, dir int) bool {
	if dir != -1 && dir != 1 {
		return false
	}
	target := index + dir
	if index < 0 || index >= len(p.Items) || target < 0 || target >= len(p.Items) {
		return false
	}
	p.Items[index], p.Items[target] = p.Items[target], p.Items[index]
	return true
}

// ResolvedItem is a plan unit joined with the library entry it references.
// Exactly one of Video or Exercise is set.
type ResolvedItem struct {
	TrainingUnitItem
	Video    *VideoItem    `json:"video,omitempty"`
	Exercise *ExerciseItem `json:"exercise,omitempty"`
}

// Resolve joins plan items to entries of lib. Dangling references are skipped.
func (p TrainingPlan) Resolve(lib LibraryState) []ResolvedItem {
	out := make([]ResolvedItem, 0, len(p.Items))
	for _, it := range p.Items {
		switch it.Type {
		case UnitVideo:
			if v, ok := lib.FindVideo(it.RefID); ok {
				out = append(out, ResolvedItem{TrainingUnitItem: it, Video: &v})
			}
		case UnitExercise:
			if e, ok := lib.FindExercise(it.RefID); ok {
				out = append(out, ResolvedItem{TrainingUnitItem: it, Exercise: &e})
			}
		}
	}
	return out
}
