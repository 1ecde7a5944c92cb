package workflow

import (
	"shoredock-backend/internal/constants"
	"shoredock-backend/internal/models"
)

// Stage is one step of the ordered data-collection workflow.
type Stage struct {
	ID          constants.StageID `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
}

// stageTable is the static stage catalog, in workflow order.
var stageTable = []Stage{
	{constants.StageWelcome, "Welcome", "Overview of the permitting process"},
	{constants.StagePropertyOwner, "Property Owner", "Owner identity and contact information"},
	{constants.StageProjectDetails, "Project Details", "What you are building and what it will cost"},
	{constants.StagePropertySite, "Property & Site", "Address, parcel, elevation, and site measurements"},
	{constants.StageSitePlan, "Site Plan", "Draw or attach the site plan"},
	{constants.StageInsurance, "Insurance", "Liability insurance details"},
	{constants.StagePermitApplications, "Permit Applications", "Work through each required application"},
	{constants.StageReview, "Review", "Review everything before generating documents"},
	{constants.StageGenerateDocuments, "Generate Documents", "Produce submission-ready documents"},
	{constants.StageSubmitTrack, "Submit & Track", "Submit applications and track their status"},
}

// Stages returns the static stage catalog.
func Stages() []Stage {
	out := make([]Stage, len(stageTable))
	copy(out, stageTable)
	return out
}

// StageByID looks up a stage definition.
func StageByID(id constants.StageID) (Stage, bool) {
	for _, s := range stageTable {
		if s.ID == id {
			return s, true
		}
	}
	return Stage{}, false
}

// StageState is a stage plus runtime flags for one project. A stage is
// accessible iff it is the current stage or an earlier one.
type StageState struct {
	Stage
	Accessible bool `json:"accessible"`
	IsComplete bool `json:"is_complete"`
	IsCurrent  bool `json:"is_current"`
}

// StageStates computes the per-stage runtime view for a project.
func StageStates(p *models.Project) []StageState {
	states := make([]StageState, 0, len(stageTable))
	for _, s := range stageTable {
		res := ValidateStage(s.ID, p)
		states = append(states, StageState{
			Stage:      s,
			Accessible: p != nil && s.ID <= p.CurrentStage,
			IsComplete: res.IsComplete,
			IsCurrent:  p != nil && s.ID == p.CurrentStage,
		})
	}
	return states
}
