package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planWithItems(ids ...string) TrainingPlan {
	p := TrainingPlan{ID: "plan_1", Title: "Guards"}
	for _, id := range ids {
		p.AddItem(id, UnitExercise, "ex_"+id)
	}
	return p
}

func itemIDs(p TrainingPlan) []string {
	out := make([]string, len(p.Items))
	for i, it := range p.Items {
		out[i] = it.ID
	}
	return out
}

func TestMoveItemAt_OutOfRangeIsNoop(t *testing.T) {
	p := planWithItems("a", "b", "c")

	assert.False(t, p.MoveItemAt(0, -1))
	assert.Equal(t, []string{"a", "b", "c"}, itemIDs(p))

	assert.False(t, p.MoveItemAt(2, 1))
	assert.Equal(t, []string{"a", "b", "c"}, itemIDs(p))

	assert.False(t, p.MoveItemAt(7, -1))
	assert.False(t, p.MoveItemAt(1, 2))
	assert.Equal(t, []string{"a", "b", "c"}, itemIDs(p))
}

func TestMoveItem_SwapsAdjacent(t *testing.T) {
	p := planWithItems("a", "b", "c")

	require.True(t, p.MoveItem("c", -1))
	assert.Equal(t, []string{"a", "c", "b"}, itemIDs(p))

	require.True(t, p.MoveItem("a", 1))
	assert.Equal(t, []string{"c", "a", "b"}, itemIDs(p))

	assert.False(t, p.MoveItem("missing", 1))
	assert.Equal(t, []string{"c", "a", "b"}, itemIDs(p))
}

func TestRemoveItem(t *testing.T) {
	p := planWithItems("a", "b", "c")
	before := p.Items

	assert.True(t, p.RemoveItem("b"))
	assert.Equal(t, []string{"a", "c"}, itemIDs(p))
	assert.Equal(t, "b", before[1].ID, "removal must not rewrite the previous backing array")

	assert.False(t, p.RemoveItem("b"))
}

func TestResolve_SkipsDanglingRefs(t *testing.T) {
	lib := LibraryState{
		Videos:    []VideoItem{{ID: "yt_abc", URL: "https://youtu.be/abc", Platform: PlatformYouTube}},
		Exercises: []ExerciseItem{{ID: "ex_1", Title: "Mikan drill"}},
	}
	p := TrainingPlan{Items: []TrainingUnitItem{
		{ID: "u1", Type: UnitVideo, RefID: "yt_abc"},
		{ID: "u2", Type: UnitExercise, RefID: "ex_deleted"},
		{ID: "u3", Type: UnitExercise, RefID: "ex_1"},
		{ID: "u4", Type: UnitVideo, RefID: "ex_1"},
	}}

	got := p.Resolve(lib)
	require.Len(t, got, 2)
	assert.Equal(t, "u1", got[0].ID)
	assert.Equal(t, "yt_abc", got[0].Video.ID)
	assert.Nil(t, got[0].Exercise)
	assert.Equal(t, "u3", got[1].ID)
	assert.Equal(t, "Mikan drill", got[1].Exercise.Title)
}
