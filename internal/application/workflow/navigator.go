package workflow

import (
	"context"
	"errors"
	"fmt"

	"shoredock-backend/internal/application/permits"
	"shoredock-backend/internal/constants"
	"shoredock-backend/internal/models"

	"github.com/rs/zerolog/log"
)

var ErrNoProject = errors.New("No project is loaded")

// ProjectSaver persists the whole project aggregate.
type ProjectSaver interface {
	Save(ctx context.Context, p *models.Project) error
}

// SnapshotWriter appends a version snapshot of the project.
type SnapshotWriter interface {
	SaveVersion(ctx context.Context, p *models.Project, trigger constants.VersionTrigger, description *string) (*models.ProjectVersion, error)
}

// MoveOutcome classifies the result of a navigation attempt.
type MoveOutcome string

const (
	MoveAdvanced          MoveOutcome = "advanced"
	MoveRetreated         MoveOutcome = "retreated"
	MoveJumped            MoveOutcome = "jumped"
	MoveBlocked           MoveOutcome = "blocked"
	MoveNeedsConfirmation MoveOutcome = "needs_confirmation"
	MoveNoop              MoveOutcome = "noop"
)

// MoveResult is returned by every navigation call. Blocked moves carry the
// blocking message; confirmation-gated moves carry the warning the user
// must acknowledge. Navigation never throws for a blocked move.
type MoveResult struct {
	Outcome         MoveOutcome       `json:"outcome"`
	Stage           constants.StageID `json:"stage"`
	BlockingMessage string            `json:"blocking_message,omitempty"`
	WarningMessage  string            `json:"warning_message,omitempty"`
}

// Navigator is the stage-gated workflow state machine for one project
// session. It owns the back-stack and enforces validated, monotonic
// advancement with rollback. Not safe for concurrent use; the wizard is
// single-user, single-process.
type Navigator struct {
	project  *models.Project
	stack    []constants.StageID
	projects ProjectSaver
	versions SnapshotWriter
}

// NewNavigator seeds the back-stack with the project's persisted stage.
func NewNavigator(p *models.Project, projects ProjectSaver, versions SnapshotWriter) *Navigator {
	start := constants.FirstStage
	if p != nil && constants.ValidStageID(p.CurrentStage) {
		start = p.CurrentStage
	}
	if p != nil {
		p.CurrentStage = start
	}
	return &Navigator{
		project:  p,
		stack:    []constants.StageID{start},
		projects: projects,
		versions: versions,
	}
}

func (n *Navigator) CurrentStage() constants.StageID {
	if n.project == nil {
		return constants.FirstStage
	}
	return n.project.CurrentStage
}

// CanGoBack: the stack keeps at least the current stage.
func (n *Navigator) CanGoBack() bool {
	return len(n.stack) > 1
}

func (n *Navigator) CanGoForward() bool {
	return n.CurrentStage() < constants.LastStage
}

// History returns the visited-stage stack, oldest first.
func (n *Navigator) History() []constants.StageID {
	out := make([]constants.StageID, len(n.stack))
	copy(out, n.stack)
	return out
}

// Next advances past the current stage. The stage must validate as
// passable; a non-blocking warning requires confirmed=true. When the
// stage's full completion predicate holds, a stage_complete snapshot is
// written and awaited before the pointer moves — if that write fails, the
// transition fails and the project is untouched.
func (n *Navigator) Next(ctx context.Context, confirmed bool) (MoveResult, error) {
	if n.project == nil {
		return MoveResult{Outcome: MoveBlocked, BlockingMessage: ErrNoProject.Error()}, nil
	}
	current := n.project.CurrentStage
	if !n.CanGoForward() {
		return MoveResult{Outcome: MoveNoop, Stage: current}, nil
	}

	res := ValidateStage(current, n.project)
	if !res.CanProceed {
		return MoveResult{Outcome: MoveBlocked, Stage: current, BlockingMessage: res.BlockingMessage}, nil
	}
	if res.WarningMessage != "" && !confirmed {
		return MoveResult{Outcome: MoveNeedsConfirmation, Stage: current, WarningMessage: res.WarningMessage}, nil
	}

	if res.IsComplete && n.versions != nil {
		if _, err := n.versions.SaveVersion(ctx, n.project, constants.TriggerStageComplete, nil); err != nil {
			return MoveResult{Outcome: MoveBlocked, Stage: current},
				fmt.Errorf("stage-complete snapshot failed, staying on stage %d: %w", current, err)
		}
	}

	// Leaving the stages that feed the evaluator refreshes the required
	// permit set before anything is persisted.
	if current == constants.StageProjectDetails || current == constants.StagePropertySite {
		RefreshRequiredPermits(n.project)
	}

	next := current + 1
	n.project.CurrentStage = next
	n.stack = append(n.stack, next)
	if err := n.projects.Save(ctx, n.project); err != nil {
		n.project.CurrentStage = current
		n.stack = n.stack[:len(n.stack)-1]
		return MoveResult{Outcome: MoveBlocked, Stage: current}, fmt.Errorf("persisting stage transition: %w", err)
	}
	log.Info().Str("project_id", n.project.ProjectID.String()).Int("from", int(current)).Int("to", int(next)).Msg("Stage advanced")
	return MoveResult{Outcome: MoveAdvanced, Stage: next}, nil
}

// Previous pops the back-stack. Retreating never re-validates the stage
// being departed, and persists the project first.
func (n *Navigator) Previous(ctx context.Context) (MoveResult, error) {
	if n.project == nil {
		return MoveResult{Outcome: MoveBlocked, BlockingMessage: ErrNoProject.Error()}, nil
	}
	if !n.CanGoBack() {
		return MoveResult{Outcome: MoveNoop, Stage: n.project.CurrentStage}, nil
	}
	current := n.project.CurrentStage
	target := n.stack[len(n.stack)-2]
	n.project.CurrentStage = target
	n.stack = n.stack[:len(n.stack)-1]
	if err := n.projects.Save(ctx, n.project); err != nil {
		n.project.CurrentStage = current
		n.stack = append(n.stack, current)
		return MoveResult{Outcome: MoveBlocked, Stage: current}, fmt.Errorf("persisting stage retreat: %w", err)
	}
	return MoveResult{Outcome: MoveRetreated, Stage: target}, nil
}

// GoToStage jumps to a previously reached stage. Jumping to the current
// stage is a no-op; skipping ahead is the caller's concern, enforced with
// the stage accessibility flag.
func (n *Navigator) GoToStage(ctx context.Context, id constants.StageID) (MoveResult, error) {
	if n.project == nil {
		return MoveResult{Outcome: MoveBlocked, BlockingMessage: ErrNoProject.Error()}, nil
	}
	if !constants.ValidStageID(id) {
		return MoveResult{Outcome: MoveBlocked, Stage: n.project.CurrentStage, BlockingMessage: "Unknown stage."}, nil
	}
	current := n.project.CurrentStage
	if id == current {
		return MoveResult{Outcome: MoveNoop, Stage: current}, nil
	}
	n.project.CurrentStage = id
	n.stack = append(n.stack, id)
	if err := n.projects.Save(ctx, n.project); err != nil {
		n.project.CurrentStage = current
		n.stack = n.stack[:len(n.stack)-1]
		return MoveResult{Outcome: MoveBlocked, Stage: current}, fmt.Errorf("persisting stage jump: %w", err)
	}
	return MoveResult{Outcome: MoveJumped, Stage: id}, nil
}

// RefreshRequiredPermits recomputes recommendations and rewrites the
// project's required permit set (required and likely entries), then
// repairs the permit-application map. Reservoir use survives regardless.
func RefreshRequiredPermits(p *models.Project) {
	recs := permits.DetermineRequiredPermits(p.Details, p.Site.ElevationFeet)
	required := make([]constants.PermitType, 0, len(recs))
	for _, r := range recs {
		if r.IsRequired || r.IsLikelyRequired {
			required = append(required, r.PermitType)
		}
	}
	p.RequiredPermits = required
	p.EnsurePermitEntries()
}
