package workflow

import (
	"sync"

	"github.com/google/uuid"

	"shoredock-backend/internal/constants"
	"shoredock-backend/internal/models"
)

// Sessions keeps per-project navigation back-stacks for the lifetime of
// the process. Stacks live only in memory; after a restart each stack is
// reseeded with the project's persisted current stage.
type Sessions struct {
	mu       sync.Mutex
	stacks   map[uuid.UUID][]constants.StageID
	projects ProjectSaver
	versions SnapshotWriter
}

func NewSessions(projects ProjectSaver, versions SnapshotWriter) *Sessions {
	return &Sessions{
		stacks:   make(map[uuid.UUID][]constants.StageID),
		projects: projects,
		versions: versions,
	}
}

// Navigator builds a navigator around the freshly loaded project,
// resuming the project's session stack when its top still matches the
// persisted stage. A mismatch (e.g. after a version restore) drops the
// stale stack.
func (s *Sessions) Navigator(p *models.Project) *Navigator {
	nav := NewNavigator(p, s.projects, s.versions)
	if p == nil {
		return nav
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if stack, ok := s.stacks[p.ProjectID]; ok && len(stack) > 0 && stack[len(stack)-1] == p.CurrentStage {
		nav.stack = append([]constants.StageID(nil), stack...)
	}
	return nav
}

// Remember stores the navigator's stack back into the session registry.
func (s *Sessions) Remember(nav *Navigator) {
	if nav == nil || nav.project == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stacks[nav.project.ProjectID] = nav.History()
}

// Forget drops a project's session stack, e.g. when the project is deleted.
func (s *Sessions) Forget(projectID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stacks, projectID)
}
