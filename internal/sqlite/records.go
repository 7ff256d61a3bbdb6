package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/OctaInsight/kpi-dashboard/internal/domain/kpi"
	"github.com/OctaInsight/kpi-dashboard/internal/store"
)

const dateLayout = "2006-01-02"

// RecordStore implements store.Store on a SQLite table. Records are keyed by
// an AUTOINCREMENT surrogate id.
type RecordStore struct {
	db  *DB
	now func() time.Time
}

// NewRecordStore creates a new RecordStore
func NewRecordStore(db *DB) *RecordStore {
	return &RecordStore{db: db, now: time.Now}
}

// Append inserts a record, assigning CreatedAt and the surrogate id.
func (r *RecordStore) Append(ctx context.Context, project string, rec *kpi.Record) error {
	if strings.TrimSpace(project) == "" {
		return store.ErrInvalidInput
	}

	rec.Project = project
	rec.CreatedAt = r.now()

	query := `
		INSERT INTO kpi_records (
			project, kpi, work_package, target, current_value,
			achievement_date, male_count, female_count, comments,
			start_date, end_date, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		rec.Project,
		rec.KPI,
		rec.WorkPackage,
		rec.Target,
		rec.CurrentValue,
		formatDate(rec.AchievementDate),
		nullCount(rec.MaleCount),
		nullCount(rec.FemaleCount),
		rec.Comments,
		formatDate(rec.StartDate),
		formatDate(rec.EndDate),
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert id: %w", err)
	}
	rec.ID = id

	return nil
}

// Load retrieves all records for a project in insertion order.
func (r *RecordStore) Load(ctx context.Context, project string) ([]kpi.Record, error) {
	query := selectColumns + ` WHERE project = ? ORDER BY id ASC`
	return r.queryRecords(ctx, query, project)
}

// LoadAll retrieves every record across all projects.
func (r *RecordStore) LoadAll(ctx context.Context) ([]kpi.Record, error) {
	query := selectColumns + ` ORDER BY project ASC, id ASC`
	return r.queryRecords(ctx, query)
}

// Update rewrites only the supplied fields of the record matching id and
// refreshes created_at.
func (r *RecordStore) Update(ctx context.Context, project string, id int64, fields kpi.UpdateFields) error {
	var owner string
	err := r.db.QueryRowContext(ctx,
		`SELECT project FROM kpi_records WHERE id = ?`, id).Scan(&owner)
	if err == sql.ErrNoRows {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up record: %w", err)
	}
	if owner != project {
		return store.ErrProjectMismatch
	}

	assignments := []string{"created_at = ?"}
	args := []any{r.now()}

	appendSet := func(column string, value any) {
		assignments = append(assignments, column+" = ?")
		args = append(args, value)
	}
	if fields.KPI != nil {
		appendSet("kpi", *fields.KPI)
	}
	if fields.WorkPackage != nil {
		appendSet("work_package", *fields.WorkPackage)
	}
	if fields.Target != nil {
		appendSet("target", *fields.Target)
	}
	if fields.CurrentValue != nil {
		appendSet("current_value", *fields.CurrentValue)
	}
	if fields.AchievementDate != nil {
		appendSet("achievement_date", formatDate(*fields.AchievementDate))
	}
	if fields.MaleCount != nil {
		appendSet("male_count", *fields.MaleCount)
	}
	if fields.FemaleCount != nil {
		appendSet("female_count", *fields.FemaleCount)
	}
	if fields.Comments != nil {
		appendSet("comments", *fields.Comments)
	}
	if fields.StartDate != nil {
		appendSet("start_date", formatDate(*fields.StartDate))
	}
	if fields.EndDate != nil {
		appendSet("end_date", formatDate(*fields.EndDate))
	}

	query := `UPDATE kpi_records SET ` + strings.Join(assignments, ", ") + ` WHERE id = ?`
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	return nil
}

// ListProjects returns the distinct project names in the table.
func (r *RecordStore) ListProjects(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT project FROM kpi_records ORDER BY project ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []string
	for rows.Next() {
		var project string
		if err := rows.Scan(&project); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}
	return projects, nil
}

const selectColumns = `
	SELECT
		id, project, kpi, work_package, target, current_value,
		achievement_date, male_count, female_count, comments,
		start_date, end_date, created_at
	FROM kpi_records`

func (r *RecordStore) queryRecords(ctx context.Context, query string, args ...any) ([]kpi.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []kpi.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (kpi.Record, error) {
	var (
		rec          kpi.Record
		achievement  sql.NullString
		male, female sql.NullInt64
		start, end   sql.NullString
	)

	err := rows.Scan(
		&rec.ID,
		&rec.Project,
		&rec.KPI,
		&rec.WorkPackage,
		&rec.Target,
		&rec.CurrentValue,
		&achievement,
		&male,
		&female,
		&rec.Comments,
		&start,
		&end,
		&rec.CreatedAt,
	)
	if err != nil {
		return kpi.Record{}, fmt.Errorf("failed to scan record: %w", err)
	}

	if rec.AchievementDate, err = parseDate(achievement); err != nil {
		return kpi.Record{}, fmt.Errorf("achievement date: %w", err)
	}
	if rec.StartDate, err = parseDate(start); err != nil {
		return kpi.Record{}, fmt.Errorf("start date: %w", err)
	}
	if rec.EndDate, err = parseDate(end); err != nil {
		return kpi.Record{}, fmt.Errorf("end date: %w", err)
	}
	rec.MaleCount = countPtr(male)
	rec.FemaleCount = countPtr(female)

	return rec, nil
}

func formatDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}

func parseDate(s sql.NullString) (time.Time, error) {
	if !s.Valid || s.String == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s.String)
}

func nullCount(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func countPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
