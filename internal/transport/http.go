// Package transport exposes the dashboard over HTTP: a JSON API for record
// entry and editing, and PNG chart endpoints for the dashboard views.
package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/OctaInsight/kpi-dashboard/internal/domain/kpi"
	"github.com/OctaInsight/kpi-dashboard/internal/domain/session"
	"github.com/OctaInsight/kpi-dashboard/internal/store"
)

const dateLayout = "2006-01-02"

// Server wires HTTP handlers over the KPI and session services.
type Server struct {
	records  *kpi.Service
	sessions *session.Service
	logger   *slog.Logger
}

// NewServer creates the HTTP router with session middleware.
func NewServer(records *kpi.Service, sessions *session.Service, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(SessionMiddleware)

	srv := &Server{records: records, sessions: sessions, logger: logger}

	r.Get("/health", srv.handleHealth)
	r.Post("/session", srv.handleStartSession)
	r.Post("/session/login", srv.handleLogin)

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", srv.handleListProjects)
		r.Get("/records", srv.handleAllRecords)
		r.Route("/projects/{project}", func(r chi.Router) {
			r.Get("/records", srv.handleProjectRecords)
			r.Get("/overview", srv.handleOverview)
			r.Group(func(r chi.Router) {
				r.Use(RequireUnlocked(sessions))
				r.Post("/records", srv.handleAppend)
				r.Patch("/records/{id}", srv.handleUpdate)
			})
		})
	})

	r.Route("/charts/{project}", func(r chi.Router) {
		r.Get("/overview.png", srv.handleOverviewChart)
		r.Get("/status.png", srv.handleStatusChart)
		r.Route("/kpis/{kpi}", func(r chi.Router) {
			r.Get("/trend.png", srv.handleTrendChart)
			r.Get("/target.png", srv.handleTargetChart)
			r.Get("/gauge.png", srv.handleGaugeChart)
			r.Get("/gender.png", srv.handleGenderChart)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	id := s.startSession(w)
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": id})
}

type loginRequest struct {
	Project  string `json:"project"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID, ok := SessionIDFromContext(r.Context())
	if !ok {
		sessionID = s.startSession(w)
	}

	if !s.sessions.Login(sessionID, req.Project, req.Password) {
		writeError(w, http.StatusUnauthorized, "incorrect password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"unlocked": true, "project": req.Project})
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.records.Projects(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	// Configured projects are selectable even before their first record.
	seen := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		seen[p] = struct{}{}
	}
	for _, p := range s.sessions.Projects() {
		if _, ok := seen[p]; !ok {
			projects = append(projects, p)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

func (s *Server) handleAllRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.AllRecords(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

func (s *Server) handleProjectRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.Records(r.Context(), projectParam(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.records.Overview(r.Context(), projectParam(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"kpis": summaries})
}

type recordRequest struct {
	KPI             string  `json:"kpi"`
	WorkPackage     string  `json:"work_package"`
	Target          float64 `json:"target"`
	CurrentValue    float64 `json:"current_value"`
	AchievementDate string  `json:"achievement_date"`
	MaleCount       *int    `json:"male_count"`
	FemaleCount     *int    `json:"female_count"`
	Comments        string  `json:"comments"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
}

func (s *Server) handleAppend(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec := kpi.Record{
		Project:      projectParam(r),
		KPI:          req.KPI,
		WorkPackage:  req.WorkPackage,
		Target:       req.Target,
		CurrentValue: req.CurrentValue,
		MaleCount:    req.MaleCount,
		FemaleCount:  req.FemaleCount,
		Comments:     req.Comments,
	}

	var err error
	if rec.AchievementDate, err = parseDate(req.AchievementDate); err != nil {
		writeError(w, http.StatusBadRequest, "invalid achievement_date")
		return
	}
	if rec.StartDate, err = parseDate(req.StartDate); err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date")
		return
	}
	if rec.EndDate, err = parseDate(req.EndDate); err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date")
		return
	}

	if err := s.records.Append(r.Context(), &rec); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

type updateRequest struct {
	KPI             *string  `json:"kpi"`
	WorkPackage     *string  `json:"work_package"`
	Target          *float64 `json:"target"`
	CurrentValue    *float64 `json:"current_value"`
	AchievementDate *string  `json:"achievement_date"`
	MaleCount       *int     `json:"male_count"`
	FemaleCount     *int     `json:"female_count"`
	Comments        *string  `json:"comments"`
	StartDate       *string  `json:"start_date"`
	EndDate         *string  `json:"end_date"`
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := kpi.UpdateFields{
		KPI:          req.KPI,
		WorkPackage:  req.WorkPackage,
		Target:       req.Target,
		CurrentValue: req.CurrentValue,
		MaleCount:    req.MaleCount,
		FemaleCount:  req.FemaleCount,
		Comments:     req.Comments,
	}
	if fields.AchievementDate, err = parseDatePtr(req.AchievementDate); err != nil {
		writeError(w, http.StatusBadRequest, "invalid achievement_date")
		return
	}
	if fields.StartDate, err = parseDatePtr(req.StartDate); err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date")
		return
	}
	if fields.EndDate, err = parseDatePtr(req.EndDate); err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date")
		return
	}

	if err := s.records.Update(r.Context(), projectParam(r), id, fields); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": true, "id": id})
}

func (s *Server) startSession(w http.ResponseWriter) string {
	id := s.sessions.Start()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// writeServiceError maps service failures onto HTTP statuses. Storage
// failures surface as a message; there is no retry.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound) || errors.Is(err, kpi.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, store.ErrProjectMismatch):
		writeError(w, http.StatusBadRequest, "record does not belong to project")
	case errors.Is(err, kpi.ErrInvalidInput) || errors.Is(err, store.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid input")
	default:
		if s.logger != nil {
			s.logger.Error("storage error", "error", err)
		}
		writeError(w, http.StatusInternalServerError, "storage error: "+err.Error())
	}
}

func projectParam(r *http.Request) string {
	return pathParam(r, "project")
}

func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
