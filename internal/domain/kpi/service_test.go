package kpi_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/OctaInsight/kpi-dashboard/internal/domain/kpi"
	"github.com/OctaInsight/kpi-dashboard/internal/store/mocks"
)

func TestService_Append_Valid(t *testing.T) {
	ctx := context.Background()
	recordStore := &mocks.Store{}
	recordStore.On("Append", ctx, "Project Alpha", mock.Anything).Return(nil)

	svc := kpi.NewService(recordStore, nil)
	rec := kpi.Record{
		Project:      "Project Alpha",
		KPI:          "Enrolment",
		Target:       100,
		CurrentValue: 10,
	}
	require.NoError(t, svc.Append(ctx, &rec))
	recordStore.AssertExpectations(t)
}

func TestService_Append_BlocksInvalidRecord(t *testing.T) {
	ctx := context.Background()
	recordStore := &mocks.Store{}
	svc := kpi.NewService(recordStore, nil)

	cases := []struct {
		name string
		rec  kpi.Record
	}{
		{"empty project", kpi.Record{KPI: "Enrolment", Target: 1}},
		{"empty kpi", kpi.Record{Project: "Project Alpha", Target: 1}},
		{"negative target", kpi.Record{Project: "Project Alpha", KPI: "Enrolment", Target: -1}},
		{"negative current", kpi.Record{Project: "Project Alpha", KPI: "Enrolment", Target: 1, CurrentValue: -2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := tc.rec
			require.ErrorIs(t, svc.Append(ctx, &rec), kpi.ErrInvalidInput)
		})
	}
	// No write may reach the store.
	recordStore.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Update_ValidatesSuppliedFields(t *testing.T) {
	ctx := context.Background()
	recordStore := &mocks.Store{}
	svc := kpi.NewService(recordStore, nil)

	bad := -5.0
	err := svc.Update(ctx, "Project Alpha", 0, kpi.UpdateFields{Target: &bad})
	require.ErrorIs(t, err, kpi.ErrInvalidInput)
	recordStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Update_Delegates(t *testing.T) {
	ctx := context.Background()
	current := 42.0
	fields := kpi.UpdateFields{CurrentValue: &current}

	recordStore := &mocks.Store{}
	recordStore.On("Update", ctx, "Project Alpha", int64(3), fields).Return(nil)

	svc := kpi.NewService(recordStore, nil)
	require.NoError(t, svc.Update(ctx, "Project Alpha", 3, fields))
	recordStore.AssertExpectations(t)
}

func TestService_Overview_ComputesStatusFromLatest(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	records := []kpi.Record{
		{
			Project: "Project Alpha", KPI: "Enrolment",
			Target: 100, CurrentValue: 10,
			StartDate: now.AddDate(0, 0, -10), EndDate: now.AddDate(0, 0, 10),
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			Project: "Project Alpha", KPI: "Enrolment",
			Target: 100, CurrentValue: 95,
			StartDate: now.AddDate(0, 0, -10), EndDate: now.AddDate(0, 0, 10),
			CreatedAt: now.Add(-time.Hour),
		},
		{
			Project: "Project Alpha", KPI: "Training",
			Target: 0, CurrentValue: 5,
			CreatedAt: now.Add(-time.Hour),
		},
	}

	recordStore := &mocks.Store{}
	recordStore.On("Load", ctx, "Project Alpha").Return(records, nil)

	svc := kpi.NewService(recordStore, nil)
	summaries, err := svc.Overview(ctx, "Project Alpha")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	require.Equal(t, "Enrolment", summaries[0].KPI)
	require.Equal(t, float64(95), summaries[0].CurrentValue)
	require.InDelta(t, 95, summaries[0].ProgressPct, 0.001)
	require.Equal(t, kpi.StatusOnTrack, summaries[0].Status)

	require.Equal(t, "Training", summaries[1].KPI)
	require.Equal(t, kpi.StatusNotStarted, summaries[1].Status)
	require.Zero(t, summaries[1].ProgressPct)
}

func TestService_History_FiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	records := []kpi.Record{
		obs(0, "Enrolment", 30, t0.Add(2*time.Hour)),
		obs(1, "Training", 1, t0),
		obs(2, "Enrolment", 10, t0),
	}

	recordStore := &mocks.Store{}
	recordStore.On("Load", ctx, "Project Alpha").Return(records, nil)

	svc := kpi.NewService(recordStore, nil)
	history, err := svc.History(ctx, "Project Alpha", "Enrolment")
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, float64(10), history[0].CurrentValue)
	require.Equal(t, float64(30), history[1].CurrentValue)
}

func TestService_Projects(t *testing.T) {
	ctx := context.Background()
	recordStore := &mocks.Store{}
	recordStore.On("ListProjects", ctx).Return([]string{"Project Alpha", "Project Beta"}, nil)

	svc := kpi.NewService(recordStore, nil)
	projects, err := svc.Projects(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Project Alpha", "Project Beta"}, projects)
}
