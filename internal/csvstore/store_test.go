package csvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/OctaInsight/kpi-dashboard/internal/domain/kpi"
	"github.com/OctaInsight/kpi-dashboard/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func sampleRecord() kpi.Record {
	male, female := 12, 8
	return kpi.Record{
		KPI:             "Enrolment",
		WorkPackage:     "WP1",
		Target:          100,
		CurrentValue:    42.5,
		AchievementDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		MaleCount:       &male,
		FemaleCount:     &female,
		Comments:        "steady, intake ongoing",
		StartDate:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestStore_AppendLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := sampleRecord()
	require.NoError(t, s.Append(ctx, "Project Alpha", &rec))
	require.Equal(t, int64(0), rec.ID)
	require.False(t, rec.CreatedAt.IsZero())

	loaded, err := s.Load(ctx, "Project Alpha")
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	require.Equal(t, "Project Alpha", got.Project)
	require.Equal(t, rec.KPI, got.KPI)
	require.Equal(t, rec.WorkPackage, got.WorkPackage)
	require.Equal(t, rec.Target, got.Target)
	require.Equal(t, rec.CurrentValue, got.CurrentValue)
	require.True(t, got.AchievementDate.Equal(rec.AchievementDate))
	require.NotNil(t, got.MaleCount)
	require.Equal(t, 12, *got.MaleCount)
	require.NotNil(t, got.FemaleCount)
	require.Equal(t, 8, *got.FemaleCount)
	require.Equal(t, rec.Comments, got.Comments)
	require.True(t, got.StartDate.Equal(rec.StartDate))
	require.True(t, got.EndDate.Equal(rec.EndDate))
	require.False(t, got.CreatedAt.IsZero())
}

func TestStore_OptionalCountsOmitted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := sampleRecord()
	rec.MaleCount = nil
	rec.FemaleCount = nil
	require.NoError(t, s.Append(ctx, "Project Alpha", &rec))

	loaded, err := s.Load(ctx, "Project Alpha")
	require.NoError(t, err)
	require.Nil(t, loaded[0].MaleCount)
	require.Nil(t, loaded[0].FemaleCount)
}

func TestStore_IdentifiersAreRowPositions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec := sampleRecord()
		require.NoError(t, s.Append(ctx, "Project Alpha", &rec))
		require.Equal(t, int64(i), rec.ID)
	}

	loaded, err := s.Load(ctx, "Project Alpha")
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	for i, rec := range loaded {
		require.Equal(t, int64(i), rec.ID)
	}
}

func TestStore_LoadUnknownProjectIsEmpty(t *testing.T) {
	s := newTestStore(t)
	loaded, err := s.Load(context.Background(), "No Such Project")
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestStore_Update_PartialFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := sampleRecord()
	require.NoError(t, s.Append(ctx, "Project Alpha", &rec))
	originalCreated := rec.CreatedAt

	// Nudge the clock so the refreshed timestamp is observable.
	s.now = func() time.Time { return originalCreated.Add(time.Hour) }

	current := 77.0
	comments := "surge after campaign"
	err := s.Update(ctx, "Project Alpha", 0, kpi.UpdateFields{
		CurrentValue: &current,
		Comments:     &comments,
	})
	require.NoError(t, err)

	loaded, err := s.Load(ctx, "Project Alpha")
	require.NoError(t, err)
	got := loaded[0]

	require.Equal(t, 77.0, got.CurrentValue)
	require.Equal(t, "surge after campaign", got.Comments)
	// Unsupplied fields unchanged.
	require.Equal(t, rec.KPI, got.KPI)
	require.Equal(t, rec.Target, got.Target)
	require.True(t, got.StartDate.Equal(rec.StartDate))
	// Timestamp always refreshed.
	require.True(t, got.CreatedAt.After(originalCreated.Truncate(time.Second)))
}

func TestStore_Update_UnknownIdentifier(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := sampleRecord()
	require.NoError(t, s.Append(ctx, "Project Alpha", &rec))

	current := 1.0
	err := s.Update(ctx, "Project Alpha", 9, kpi.UpdateFields{CurrentValue: &current})
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.Update(ctx, "Project Alpha", -1, kpi.UpdateFields{CurrentValue: &current})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_ListProjectsAndLoadAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, project := range []string{"Project Beta", "Project Alpha"} {
		rec := sampleRecord()
		require.NoError(t, s.Append(ctx, project, &rec))
	}

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Project Alpha", "Project Beta"}, projects)

	all, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Project Alpha", all[0].Project)
	require.Equal(t, "Project Beta", all[1].Project)
}

func TestStore_FilenamesAreSanitized(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := sampleRecord()
	require.NoError(t, s.Append(ctx, "Project Alpha / 2026?", &rec))

	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Project_Alpha__2026_KPI_data.csv", entries[0].Name())
	require.Equal(t, "Project_Alpha__2026_KPI_data.csv", filepath.Base(s.projectPath("Project Alpha / 2026?")))
}
