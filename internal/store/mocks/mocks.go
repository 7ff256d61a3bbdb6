package mocks

import (
	"context"

	"github.com/OctaInsight/kpi-dashboard/internal/domain/kpi"
	"github.com/stretchr/testify/mock"
)

// Store is a mock for store.Store.
type Store struct {
	mock.Mock
}

func (m *Store) Append(ctx context.Context, project string, rec *kpi.Record) error {
	args := m.Called(ctx, project, rec)
	return args.Error(0)
}

func (m *Store) Load(ctx context.Context, project string) ([]kpi.Record, error) {
	args := m.Called(ctx, project)
	if records, ok := args.Get(0).([]kpi.Record); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) LoadAll(ctx context.Context) ([]kpi.Record, error) {
	args := m.Called(ctx)
	if records, ok := args.Get(0).([]kpi.Record); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Update(ctx context.Context, project string, id int64, fields kpi.UpdateFields) error {
	args := m.Called(ctx, project, id, fields)
	return args.Error(0)
}

func (m *Store) ListProjects(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if projects, ok := args.Get(0).([]string); ok {
		return projects, args.Error(1)
	}
	return nil, args.Error(1)
}
