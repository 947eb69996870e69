package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/hoops-trainer/internal/app"
	"alcyxob/hoops-trainer/internal/config"
	"alcyxob/hoops-trainer/internal/domain"
	"alcyxob/hoops-trainer/internal/service"
)

// sqliteEnv points the CLI at a fresh sqlite file and returns a seeded app on it.
func sqliteEnv(t *testing.T) (string, *app.App) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("SQL_DSN", filepath.Join(dir, "hoops.db"))
	t.Setenv("ENRICHMENT_RATE_PER_SECOND", "0")

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return dir, a
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLibraryCommand_FiltersByPrincipal(t *testing.T) {
	dir, a := sqliteEnv(t)
	ctx := context.Background()

	_, err := a.Library.AddExercise(ctx, "coach", service.ExerciseInput{Title: "Private drill", Visibility: domain.VisibilityPrivate})
	require.NoError(t, err)
	_, err = a.Library.AddExercise(ctx, "coach", service.ExerciseInput{Title: "Shared drill", Category: "defense"})
	require.NoError(t, err)

	out, err := run(t, "library", "--config", dir)
	require.NoError(t, err)
	var anon domain.LibraryState
	require.NoError(t, json.Unmarshal([]byte(out), &anon))
	require.Len(t, anon.Exercises, 1)
	assert.Equal(t, "Shared drill", anon.Exercises[0].Title)

	out, err = run(t, "library", "--config", dir, "--principal", "coach", "--category", "uncategorized")
	require.NoError(t, err)
	var mine domain.LibraryState
	require.NoError(t, json.Unmarshal([]byte(out), &mine))
	require.Len(t, mine.Exercises, 1)
	assert.Equal(t, "Private drill", mine.Exercises[0].Title)
}

func TestPlansCommand_ListAndResolve(t *testing.T) {
	dir, a := sqliteEnv(t)
	ctx := context.Background()

	ex, err := a.Library.AddExercise(ctx, "coach", service.ExerciseInput{Title: "Free throws"})
	require.NoError(t, err)
	plan, err := a.Plans.Create(ctx, "coach", domain.TrainingPlan{
		Title: "Evening",
		Items: []domain.TrainingUnitItem{{Type: domain.UnitExercise, RefID: ex.ID}},
	})
	require.NoError(t, err)

	out, err := run(t, "plans", "--config", dir)
	require.NoError(t, err)
	var plans []domain.TrainingPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plans))
	require.Len(t, plans, 1)
	assert.Equal(t, plan.ID, plans[0].ID)

	out, err = run(t, "plans", "--config", dir, "--resolve", plan.ID)
	require.NoError(t, err)
	var resolved service.ResolvedPlan
	require.NoError(t, json.Unmarshal([]byte(out), &resolved))
	require.Len(t, resolved.Resolved, 1)
	assert.Equal(t, "Free throws", resolved.Resolved[0].Exercise.Title)

	_, err = run(t, "plans", "--config", dir, "--resolve", "plan_missing")
	assert.ErrorIs(t, err, service.ErrPlanNotFound)
}

func TestEnrichCommand_RequiresPrincipal(t *testing.T) {
	dir, _ := sqliteEnv(t)

	_, err := run(t, "enrich", "--config", dir)
	assert.ErrorIs(t, err, errPrincipalRequired)

	out, err := run(t, "enrich", "--config", dir, "--principal", "coach")
	require.NoError(t, err)
	var report service.EnrichmentReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Zero(t, report.Candidates)

	_, err = run(t, "enrich", "--config", dir, "--principal", "coach", "--video", "yt_nope")
	assert.ErrorIs(t, err, service.ErrVideoNotFound)
}

func TestRootCommand_BadBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "cassandra")
	_, err := run(t, "resources", "--config", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cassandra")
}
