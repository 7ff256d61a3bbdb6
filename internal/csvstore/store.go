// Package csvstore persists KPI records as one delimited file per project.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/OctaInsight/kpi-dashboard/internal/domain/kpi"
	"github.com/OctaInsight/kpi-dashboard/internal/store"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
	fileSuffix      = "_KPI_data.csv"
)

var header = []string{
	"Project", "KPI", "Work Package", "Target", "Current Value",
	"Achievement Date", "Male Count", "Female Count", "Comments",
	"Start Date", "End Date", "Timestamp",
}

// Store is the file-backed record store. Record identifiers are row
// positions (0-based, header excluded); they stay stable because records are
// never deleted, only appended or rewritten in place.
type Store struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Append writes rec to the project's file, assigning CreatedAt and the row
// identifier.
func (s *Store) Append(ctx context.Context, project string, rec *kpi.Record) error {
	if strings.TrimSpace(project) == "" {
		return store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.projectPath(project)
	rows, err := readRows(path)
	if err != nil {
		return err
	}

	rec.Project = project
	rec.CreatedAt = s.now()
	rec.ID = int64(len(rows))

	rows = append(rows, formatRow(rec))
	return writeRows(path, rows)
}

// Load returns all records for a project in file order. A missing file is an
// empty project, not an error.
func (s *Store) Load(ctx context.Context, project string) ([]kpi.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := readRows(s.projectPath(project))
	if err != nil {
		return nil, err
	}

	records := make([]kpi.Record, 0, len(rows))
	for i, row := range rows {
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rec.ID = int64(i)
		records = append(records, rec)
	}
	return records, nil
}

// LoadAll returns records from every project file, grouped by file in
// lexical filename order.
func (s *Store) LoadAll(ctx context.Context) ([]kpi.Record, error) {
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	var all []kpi.Record
	for _, project := range projects {
		records, err := s.Load(ctx, project)
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", project, err)
		}
		all = append(all, records...)
	}
	return all, nil
}

// Update rewrites the supplied fields on row id of the project's file and
// refreshes the row's timestamp.
func (s *Store) Update(ctx context.Context, project string, id int64, fields kpi.UpdateFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.projectPath(project)
	rows, err := readRows(path)
	if err != nil {
		return err
	}
	if id < 0 || id >= int64(len(rows)) {
		return store.ErrNotFound
	}

	rec, err := parseRow(rows[id])
	if err != nil {
		return fmt.Errorf("row %d: %w", id, err)
	}
	if rec.Project != project {
		return store.ErrProjectMismatch
	}

	applyFields(&rec, fields)
	rec.CreatedAt = s.now()
	rows[id] = formatRow(&rec)

	return writeRows(path, rows)
}

// ListProjects returns project names derived from the data files present.
func (s *Store) ListProjects(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading data directory: %w", err)
	}

	var projects []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		project := strings.TrimSuffix(name, fileSuffix)
		projects = append(projects, strings.ReplaceAll(project, "_", " "))
	}
	sort.Strings(projects)
	return projects, nil
}

func (s *Store) projectPath(project string) string {
	return filepath.Join(s.dir, sanitizeProject(project)+fileSuffix)
}

// sanitizeProject strips characters unsafe for filenames and replaces spaces
// with underscores.
func sanitizeProject(project string) string {
	var b strings.Builder
	for _, r := range project {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
}

// readRows returns the data rows of a project file, header excluded. A
// missing file yields no rows.
func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil
}

// writeRows rewrites the whole project file. Written to a temp file first so
// a failed write never truncates existing data.
func writeRows(path string, rows [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".kpi-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	if err := writer.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("writing rows: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing rows: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func formatRow(rec *kpi.Record) []string {
	return []string{
		rec.Project,
		rec.KPI,
		rec.WorkPackage,
		formatFloat(rec.Target),
		formatFloat(rec.CurrentValue),
		formatDate(rec.AchievementDate),
		formatCount(rec.MaleCount),
		formatCount(rec.FemaleCount),
		rec.Comments,
		formatDate(rec.StartDate),
		formatDate(rec.EndDate),
		rec.CreatedAt.Format(timestampLayout),
	}
}

func parseRow(row []string) (kpi.Record, error) {
	if len(row) != len(header) {
		return kpi.Record{}, fmt.Errorf("expected %d columns, got %d", len(header), len(row))
	}

	target, err := parseFloat(row[3])
	if err != nil {
		return kpi.Record{}, fmt.Errorf("target: %w", err)
	}
	current, err := parseFloat(row[4])
	if err != nil {
		return kpi.Record{}, fmt.Errorf("current value: %w", err)
	}
	achievement, err := parseDate(row[5])
	if err != nil {
		return kpi.Record{}, fmt.Errorf("achievement date: %w", err)
	}
	male, err := parseCount(row[6])
	if err != nil {
		return kpi.Record{}, fmt.Errorf("male count: %w", err)
	}
	female, err := parseCount(row[7])
	if err != nil {
		return kpi.Record{}, fmt.Errorf("female count: %w", err)
	}
	start, err := parseDate(row[9])
	if err != nil {
		return kpi.Record{}, fmt.Errorf("start date: %w", err)
	}
	end, err := parseDate(row[10])
	if err != nil {
		return kpi.Record{}, fmt.Errorf("end date: %w", err)
	}
	createdAt, err := time.Parse(timestampLayout, row[11])
	if err != nil {
		return kpi.Record{}, fmt.Errorf("timestamp: %w", err)
	}

	return kpi.Record{
		Project:         row[0],
		KPI:             row[1],
		WorkPackage:     row[2],
		Target:          target,
		CurrentValue:    current,
		AchievementDate: achievement,
		MaleCount:       male,
		FemaleCount:     female,
		Comments:        row[8],
		StartDate:       start,
		EndDate:         end,
		CreatedAt:       createdAt,
	}, nil
}

func applyFields(rec *kpi.Record, fields kpi.UpdateFields) {
	if fields.KPI != nil {
		rec.KPI = *fields.KPI
	}
	if fields.WorkPackage != nil {
		rec.WorkPackage = *fields.WorkPackage
	}
	if fields.Target != nil {
		rec.Target = *fields.Target
	}
	if fields.CurrentValue != nil {
		rec.CurrentValue = *fields.CurrentValue
	}
	if fields.AchievementDate != nil {
		rec.AchievementDate = *fields.AchievementDate
	}
	if fields.MaleCount != nil {
		rec.MaleCount = fields.MaleCount
	}
	if fields.FemaleCount != nil {
		rec.FemaleCount = fields.FemaleCount
	}
	if fields.Comments != nil {
		rec.Comments = *fields.Comments
	}
	if fields.StartDate != nil {
		rec.StartDate = *fields.StartDate
	}
	if fields.EndDate != nil {
		rec.EndDate = *fields.EndDate
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

func formatCount(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func parseCount(s string) (*int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
