package kpi

import "context"

// Store provides persistence for KPI records.
type Store interface {
	Append(ctx context.Context, project string, rec *Record) error
	Load(ctx context.Context, project string) ([]Record, error)
	LoadAll(ctx context.Context) ([]Record, error)
	Update(ctx context.Context, project string, id int64, fields UpdateFields) error
	ListProjects(ctx context.Context) ([]string, error)
}
