package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/hoops-trainer/internal/domain"
	"alcyxob/hoops-trainer/internal/repository/memory"
)

func newPlanFixture(t *testing.T, clock func() time.Time) (PlanService, LibraryService) {
	t.Helper()
	store := memory.NewSlotStore()
	lib := NewLibraryService(store, "")
	return NewPlanService(store, "", lib, clock), lib
}

func samplePlan(id string) domain.TrainingPlan {
	return domain.TrainingPlan{
		ID:    id,
		Title: "Guard workout",
		Items: []domain.TrainingUnitItem{
			{ID: "i1", Type: domain.UnitVideo, RefID: "yt_abc"},
			{ID: "i2", Type: domain.UnitExercise, RefID: "ex_1"},
		},
	}
}

func TestPlanService_Timestamps(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPlanFixture(t, stepClock(t0, time.Minute))

	plans, err := svc.Upsert(ctx, "u1", samplePlan("p1"))
	require.NoError(t, err)
	require.Len(t, plans, 1)
	first := plans[0]
	assert.True(t, first.CreatedAt.Equal(first.UpdatedAt))
	assert.True(t, first.CreatedAt.Equal(t0))

	edit := first
	edit.Title = "Guard workout v2"
	plans, err = svc.Upsert(ctx, "u1", edit)
	require.NoError(t, err)
	second := plans[0]
	assert.True(t, second.CreatedAt.Equal(first.CreatedAt))
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	stored := svc.LoadAll(ctx)
	require.Len(t, stored, 1)
	assert.Equal(t, "Guard workout v2", stored[0].Title)
	assert.True(t, stored[0].CreatedAt.Equal(t0))
}

func TestPlanService_UpdatedAtAdvancesWithFrozenClock(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPlanFixture(t, fixedClock(t0))

	plans, err := svc.Upsert(ctx, "u1", samplePlan("p1"))
	require.NoError(t, err)
	prev := plans[0].UpdatedAt

	for i := 0; i < 3; i++ {
		plans, err = svc.Upsert(ctx, "u1", plans[0])
		require.NoError(t, err)
		assert.True(t, plans[0].UpdatedAt.After(prev))
		assert.True(t, plans[0].CreatedAt.Equal(t0))
		prev = plans[0].UpdatedAt
	}
}

func TestPlanService_CreatedAtCannotBeRewritten(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPlanFixture(t, stepClock(t0, time.Minute))

	_, err := svc.Upsert(ctx, "u1", samplePlan("p1"))
	require.NoError(t, err)

	forged := samplePlan("p1")
	forged.CreatedAt = t0.Add(-24 * time.Hour)
	plans, err := svc.Upsert(ctx, "u1", forged)
	require.NoError(t, err)
	assert.True(t, plans[0].CreatedAt.Equal(t0))
}

func TestPlanService_OrderingAndRemove(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPlanFixture(t, stepClock(t0, time.Second))

	for _, id := range []string{"p1", "p2", "p3"} {
		_, err := svc.Upsert(ctx, "u1", samplePlan(id))
		require.NoError(t, err)
	}
	plans, err := svc.Upsert(ctx, "u1", samplePlan("p2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p2", "p1"}, planIDs(plans))

	plans, err = svc.Remove(ctx, "missing")
	require.NoError(t, err)
	assert.Len(t, plans, 3)

	plans, err = svc.Remove(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p1"}, planIDs(plans))
	assert.Equal(t, []string{"p3", "p1"}, planIDs(svc.LoadAll(ctx)))
}

func TestPlanService_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPlanFixture(t, nil)

	noTitle := samplePlan("p1")
	noTitle.Title = "   "
	noItems := samplePlan("p1")
	noItems.Items = nil
	badType := samplePlan("p1")
	badType.Items[0].Type = "drill"
	dupIDs := samplePlan("p1")
	dupIDs.Items[1].ID = "i1"
	noRef := samplePlan("p1")
	noRef.Items[0].RefID = ""
	noID := samplePlan("")

	for name, plan := range map[string]domain.TrainingPlan{
		"no title": noTitle, "no items": noItems, "bad type": badType,
		"duplicate item ids": dupIDs, "no ref": noRef, "no id": noID,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Upsert(ctx, "u1", plan)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
	assert.Empty(t, svc.LoadAll(ctx))
}

func TestPlanService_CreateMintsIDs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPlanFixture(t, fixedClock(t0))

	plan := samplePlan("ignored")
	plan.Items[0].ID = ""
	plan.CreatedAt = t0.Add(-time.Hour)

	created, err := svc.Create(ctx, "u1", plan)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.ID, "plan_"))
	assert.True(t, strings.HasPrefix(created.Items[0].ID, "unit_"))
	assert.Equal(t, "i2", created.Items[1].ID)
	assert.True(t, created.CreatedAt.Equal(t0))
	assert.Equal(t, "u1", created.OwnerID)
	assert.Equal(t, domain.VisibilityPublic, created.Visibility)
}

func TestPlanService_Visibility(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPlanFixture(t, nil)

	private := samplePlan("p1")
	private.Visibility = domain.VisibilityPrivate
	_, err := svc.Upsert(ctx, "u1", private)
	require.NoError(t, err)

	assert.Len(t, svc.LoadVisible(ctx, "u1"), 1)
	assert.Empty(t, svc.LoadVisible(ctx, "u2"))

	_, err = svc.Get(ctx, "u2", "p1")
	assert.ErrorIs(t, err, ErrPlanNotFound)
	got, err := svc.Get(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)
}

func TestPlanService_ResolveSkipsDanglingRefs(t *testing.T) {
	ctx := context.Background()
	svc, lib := newPlanFixture(t, nil)

	_, err := lib.UpsertVideo(ctx, "u1", domain.VideoItem{ID: "yt_abc", URL: "https://youtu.be/abc"})
	require.NoError(t, err)
	_, err = lib.UpsertExercise(ctx, "u1", domain.ExerciseItem{ID: "ex_1", Title: "Layups"})
	require.NoError(t, err)
	_, err = lib.UpsertExercise(ctx, "u2", domain.ExerciseItem{ID: "ex_hidden", Title: "Secret", Visibility: domain.VisibilityPrivate})
	require.NoError(t, err)

	plan := samplePlan("p1")
	plan.Items = append(plan.Items,
		domain.TrainingUnitItem{ID: "i3", Type: domain.UnitExercise, RefID: "ex_hidden"},
		domain.TrainingUnitItem{ID: "i4", Type: domain.UnitVideo, RefID: "deleted"},
	)
	_, err = svc.Upsert(ctx, "u1", plan)
	require.NoError(t, err)

	_, err = lib.RemoveExercise(ctx, "ex_1")
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, "u1", "p1")
	require.NoError(t, err)
	require.Len(t, resolved.Resolved, 1)
	assert.Equal(t, "i1", resolved.Resolved[0].ID)
	require.NotNil(t, resolved.Resolved[0].Video)
	assert.Equal(t, "yt_abc", resolved.Resolved[0].Video.ID)
	assert.Equal(t, 3, resolved.Skipped)
	assert.Len(t, resolved.Items, 4, "the plan itself keeps dangling items")

	_, err = svc.Resolve(ctx, "u1", "missing")
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestPlanService_CorruptSlot(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSlotStore()
	require.NoError(t, store.Set(ctx, DefaultPlansKey, `{"not":"an array"}`))

	svc := NewPlanService(store, "", NewLibraryService(store, ""), nil)
	plans := svc.LoadAll(ctx)
	assert.NotNil(t, plans)
	assert.Empty(t, plans)
}

func planIDs(plans []domain.TrainingPlan) []string {
	ids := make([]string, 0, len(plans))
	for _, p := range plans {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestPlanService_MutationsAbortOnReadFailure(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	lib := NewLibraryService(store, "")
	svc := NewPlanService(store, "", lib, nil)

	plan, err := svc.Create(ctx, "u1", domain.TrainingPlan{
		Title: "Kept",
		Items: []domain.TrainingUnitItem{{Type: domain.UnitExercise, RefID: "ex_1"}},
	})
	require.NoError(t, err)

	store.setFailGets(true)
	_, err = svc.Create(ctx, "u1", domain.TrainingPlan{
		Title: "New",
		Items: []domain.TrainingUnitItem{{Type: domain.UnitVideo, RefID: "yt_1"}},
	})
	assert.ErrorIs(t, err, ErrLoadFailed)
	_, err = svc.Remove(ctx, plan.ID)
	assert.ErrorIs(t, err, ErrLoadFailed)
	_, err = svc.AddItem(ctx, "u1", plan.ID, domain.UnitVideo, "yt_2")
	assert.ErrorIs(t, err, ErrLoadFailed)

	store.setFailGets(false)
	plans := svc.LoadAll(ctx)
	require.Len(t, plans, 1)
	assert.Equal(t, plan.ID, plans[0].ID)
	assert.Len(t, plans[0].Items, 1)
}

func TestPlanService_ItemEdits(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPlanFixture(t, stepClock(t0, time.Second))

	plan, err := svc.Create(ctx, "u1", domain.TrainingPlan{
		Title:      "Ladder",
		Visibility: domain.VisibilityPrivate,
		Items:      []domain.TrainingUnitItem{{Type: domain.UnitExercise, RefID: "ex_1"}},
	})
	require.NoError(t, err)

	plan, err = svc.AddItem(ctx, "u1", plan.ID, domain.UnitVideo, "yt_1")
	require.NoError(t, err)
	require.Len(t, plan.Items, 2)
	assert.True(t, strings.HasPrefix(plan.Items[1].ID, "unit_"))
	second := plan.Items[1].ID

	moved, err := svc.MoveItem(ctx, "u1", plan.ID, second, -1)
	require.NoError(t, err)
	assert.Equal(t, second, moved.Items[0].ID)
	assert.True(t, moved.UpdatedAt.After(plan.UpdatedAt))
	assert.True(t, moved.CreatedAt.Equal(plan.CreatedAt))

	same, err := svc.MoveItem(ctx, "u1", plan.ID, second, -1)
	require.NoError(t, err)
	assert.Equal(t, moved.Items, same.Items)
	assert.True(t, same.UpdatedAt.Equal(moved.UpdatedAt), "a no-op move is not saved")

	_, err = svc.MoveItem(ctx, "u1", plan.ID, "unit_missing", 1)
	assert.ErrorIs(t, err, ErrPlanItemNotFound)
	_, err = svc.MoveItem(ctx, "u1", plan.ID, second, 2)
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = svc.AddItem(ctx, "u2", plan.ID, domain.UnitVideo, "yt_2")
	assert.ErrorIs(t, err, ErrPlanNotFound, "private plans are not editable by others")
	_, err = svc.AddItem(ctx, "u1", plan.ID, "drill", "x")
	assert.ErrorIs(t, err, ErrValidationFailed)

	plan, err = svc.RemoveItem(ctx, "u1", plan.ID, second)
	require.NoError(t, err)
	require.Len(t, plan.Items, 1)
	_, err = svc.RemoveItem(ctx, "u1", plan.ID, plan.Items[0].ID)
	assert.ErrorIs(t, err, ErrValidationFailed, "a plan keeps at least one item")
	_, err = svc.RemoveItem(ctx, "u1", plan.ID, second)
	assert.ErrorIs(t, err, ErrPlanItemNotFound)
}
