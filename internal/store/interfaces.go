package store

import (
	"context"

	"github.com/OctaInsight/kpi-dashboard/internal/domain/kpi"
)

// Store manages KPI record persistence. Both backends (CSV files, SQL table)
// implement this; the rest of the system never depends on which is active.
type Store interface {
	// Append assigns CreatedAt and the store identifier, then writes the
	// record to the project's table.
	Append(ctx context.Context, project string, rec *kpi.Record) error

	// Load returns all records for a project in store (insertion) order.
	// An unknown project yields an empty slice, not an error.
	Load(ctx context.Context, project string) ([]kpi.Record, error)

	// LoadAll returns the union of records across all projects.
	LoadAll(ctx context.Context) ([]kpi.Record, error)

	// Update rewrites only the non-nil fields on the record matching id and
	// refreshes its CreatedAt. Fails with ErrNotFound or ErrProjectMismatch.
	Update(ctx context.Context, project string, id int64, fields kpi.UpdateFields) error

	// ListProjects returns the distinct project names known to the store.
	ListProjects(ctx context.Context) ([]string, error)
}
