// internal/domain/exercise.go
package domain

// ExerciseItem is a text-only training unit in the library.
type ExerciseItem struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Category        string     `json:"category,omitempty"`    // e.g., "shooting", "dribbling"
	Description     string     `json:"description,omitempty"` // Free-text instructions
	DurationMinutes *int       `json:"durationMinutes,omitempty"`
	Visibility      Visibility `json:"visibility"`
	OwnerID         string     `json:"ownerId,omitempty"`
}

func (e ExerciseItem) GetVisibility() Visibility { return e.Visibility }
func (e ExerciseItem) GetOwnerID() string        { return e.OwnerID }

// CategoryLabel returns the category, or "uncategorized" when absent.
func (e ExerciseItem) CategoryLabel() string {
	if e.Category == "" {
		return UncategorizedLabel
	}
	return e.Category
}
