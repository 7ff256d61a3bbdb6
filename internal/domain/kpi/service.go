package kpi

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Service handles KPI record business logic on top of a Store.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new KPI service.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Append validates a record and appends it to its project's table. The store
// assigns CreatedAt and the identifier on the passed record.
func (s *Service) Append(ctx context.Context, rec *Record) error {
	if err := ValidateRecord(rec); err != nil {
		return err
	}
	if err := s.store.Append(ctx, rec.Project, rec); err != nil {
		return fmt.Errorf("appending record: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("record appended", "project", rec.Project, "kpi", rec.KPI, "id", rec.ID)
	}
	return nil
}

// Records returns all records for a project in store order.
func (s *Service) Records(ctx context.Context, project string) ([]Record, error) {
	records, err := s.store.Load(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}
	return records, nil
}

// AllRecords returns the union of records across all projects.
func (s *Service) AllRecords(ctx context.Context) ([]Record, error) {
	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading all records: %w", err)
	}
	return records, nil
}

// Update rewrites the supplied fields of one record and refreshes its
// timestamp. The identifier must exist and belong to the project.
func (s *Service) Update(ctx context.Context, project string, id int64, fields UpdateFields) error {
	if err := ValidateUpdate(fields); err != nil {
		return err
	}
	if err := s.store.Update(ctx, project, id, fields); err != nil {
		return fmt.Errorf("updating record: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("record updated", "project", project, "id", id)
	}
	return nil
}

// Projects returns the distinct project names known to the store.
func (s *Service) Projects(ctx context.Context) ([]string, error) {
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// Latest returns the most recent record per KPI for a project.
func (s *Service) Latest(ctx context.Context, project string) ([]Record, error) {
	records, err := s.store.Load(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}
	return LatestPerKPI(records), nil
}

// Overview returns one Summary per KPI of the project, computed from the
// latest record of each.
func (s *Service) Overview(ctx context.Context, project string) ([]Summary, error) {
	latest, err := s.Latest(ctx, project)
	if err != nil {
		return nil, err
	}

	today := s.now()
	summaries := make([]Summary, 0, len(latest))
	for _, rec := range latest {
		summaries = append(summaries, Summary{
			KPI:          rec.KPI,
			WorkPackage:  rec.WorkPackage,
			Target:       rec.Target,
			CurrentValue: rec.CurrentValue,
			ProgressPct:  progressPct(rec.CurrentValue, rec.Target),
			Status:       Classify(rec.CurrentValue, rec.Target, rec.StartDate, rec.EndDate, today),
			CreatedAt:    rec.CreatedAt,
		})
	}
	return summaries, nil
}

// History returns a KPI's records oldest first.
func (s *Service) History(ctx context.Context, project, kpiName string) ([]Record, error) {
	records, err := s.store.Load(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}

	history := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.KPI == kpiName {
			history = append(history, rec)
		}
	}
	return SortByCreatedAt(history), nil
}

func progressPct(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return current / target * 100
}
