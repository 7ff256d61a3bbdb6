// Package session holds the per-session project unlock state. A project is
// guarded by one shared password; unlocking lasts for the session's lifetime
// and is never persisted. This deters casual edits, it is not a security
// boundary.
package session

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Service tracks which projects each session has unlocked.
type Service struct {
	passwords map[string]string
	logger    *slog.Logger

	mu       sync.Mutex
	unlocked map[string]map[string]struct{}
}

// NewService creates a session service over a project -> password mapping.
func NewService(passwords map[string]string, logger *slog.Logger) *Service {
	return &Service{
		passwords: passwords,
		logger:    logger,
		unlocked:  make(map[string]map[string]struct{}),
	}
}

// Start creates a new session and returns its ID.
func (s *Service) Start() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.unlocked[id] = make(map[string]struct{})
	s.mu.Unlock()
	return id
}

// Login compares the supplied password against the project's configured one
// and, on match, unlocks the project for the session.
func (s *Service) Login(sessionID, project, password string) bool {
	configured, ok := s.passwords[project]
	if !ok || configured != password {
		if s.logger != nil {
			s.logger.Warn("login rejected", "project", project)
		}
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	projects, ok := s.unlocked[sessionID]
	if !ok {
		// Session predates a restart; recreate it on successful login.
		projects = make(map[string]struct{})
		s.unlocked[sessionID] = projects
	}
	projects[project] = struct{}{}
	return true
}

// Authenticate reports whether the session has unlocked the project.
func (s *Service) Authenticate(sessionID, project string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	projects, ok := s.unlocked[sessionID]
	if !ok {
		return false
	}
	_, ok = projects[project]
	return ok
}

// End discards the session's unlock state.
func (s *Service) End(sessionID string) {
	s.mu.Lock()
	delete(s.unlocked, sessionID)
	s.mu.Unlock()
}

// Projects returns the configured project names, sorted. These are the
// projects that can accept new records regardless of what the store holds.
func (s *Service) Projects() []string {
	projects := make([]string, 0, len(s.passwords))
	for name := range s.passwords {
		projects = append(projects, name)
	}
	sort.Strings(projects)
	return projects
}
