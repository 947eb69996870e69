package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVisibleTo(t *testing.T) {
	tests := []struct {
		name      string
		entry     ExerciseItem
		principal string
		want      bool
	}{
		{"public foreign entry", ExerciseItem{Visibility: VisibilityPublic, OwnerID: "u1"}, "u2", true},
		{"public ownerless entry", ExerciseItem{Visibility: VisibilityPublic}, "u2", true},
		{"private own entry", ExerciseItem{Visibility: VisibilityPrivate, OwnerID: "u1"}, "u1", true},
		{"private foreign entry", ExerciseItem{Visibility: VisibilityPrivate, OwnerID: "u1"}, "u2", false},
		{"private ownerless entry", ExerciseItem{Visibility: VisibilityPrivate}, "u2", false},
		{"private ownerless entry and empty principal", ExerciseItem{Visibility: VisibilityPrivate}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVisibleTo(tt.entry, tt.principal))
		})
	}
}

func TestFilterVisible_PreservesOrderAndNeverNil(t *testing.T) {
	plans := []TrainingPlan{
		{ID: "a", Visibility: VisibilityPrivate, OwnerID: "u2"},
		{ID: "b", Visibility: VisibilityPublic, OwnerID: "u2"},
		{ID: "c", Visibility: VisibilityPrivate, OwnerID: "u1"},
	}

	got := FilterVisible(plans, "u1")
	assert.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	none := FilterVisible([]TrainingPlan(nil), "u1")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestVisibility_OrDefault(t *testing.T) {
	assert.Equal(t, VisibilityPublic, Visibility("").OrDefault())
	assert.Equal(t, VisibilityPrivate, VisibilityPrivate.OrDefault())
	assert.False(t, Visibility("secret").Valid())
}
