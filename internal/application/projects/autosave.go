package projects

import (
	"context"
	"sync"
	"time"

	"shoredock-backend/internal/application/versions"
	"shoredock-backend/internal/constants"
	"shoredock-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Autosaver debounces whole-project writes: rapid successive mutations
// collapse into a single persisted write after a quiet period. Last write
// wins, which is safe because every write carries a full snapshot.
type Autosaver struct {
	Projects *Service
	Versions *versions.Service
	Delay    time.Duration

	mu      sync.Mutex
	timers  map[uuid.UUID]*time.Timer
	pending map[uuid.UUID]*models.Project
}

func NewAutosaver(projects *Service, vers *versions.Service, delay time.Duration) *Autosaver {
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &Autosaver{
		Projects: projects,
		Versions: vers,
		Delay:    delay,
		timers:   make(map[uuid.UUID]*time.Timer),
		pending:  make(map[uuid.UUID]*models.Project),
	}
}

// Queue schedules a debounced save. A newer queued snapshot supersedes any
// older one still waiting.
func (a *Autosaver) Queue(p *models.Project) {
	if p == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending[p.ProjectID] = p
	if t, ok := a.timers[p.ProjectID]; ok {
		t.Reset(a.Delay)
		return
	}
	id := p.ProjectID
	a.timers[id] = time.AfterFunc(a.Delay, func() {
		a.flushOne(id)
	})
}

func (a *Autosaver) flushOne(id uuid.UUID) {
	a.mu.Lock()
	p := a.pending[id]
	delete(a.pending, id)
	delete(a.timers, id)
	a.mu.Unlock()
	if p == nil {
		return
	}

	ctx := context.Background()
	if err := a.Projects.Save(ctx, p); err != nil {
		log.Error().Err(err).Str("project_id", id.String()).Msg("Autosave failed")
		return
	}
	if a.Versions != nil {
		if _, err := a.Versions.SaveVersion(ctx, p, constants.TriggerAuto, nil); err != nil {
			log.Error().Err(err).Str("project_id", id.String()).Msg("Auto version failed")
		}
	}
}

// Flush writes every pending project immediately. Used on shutdown.
func (a *Autosaver) Flush() {
	a.mu.Lock()
	ids := make([]uuid.UUID, 0, len(a.pending))
	for id, t := range a.timers {
		t.Stop()
		ids = append(ids, id)
	}
	// pending entries without timers should not exist, but sweep anyway
	for id := range a.pending {
		found := false
		for _, known := range ids {
			if known == id {
				found = true
				break
			}
		}
		if !found {
			ids = append(ids, id)
		}
	}
	a.mu.Unlock()

	for _, id := range ids {
		a.flushOne(id)
	}
}
