package constants

// StageID is the 1-based position of a workflow stage. Order-significant.
type StageID int

const (
	StageWelcome            StageID = 1
	StagePropertyOwner      StageID = 2
	StageProjectDetails     StageID = 3
	StagePropertySite       StageID = 4
	StageSitePlan           StageID = 5
	StageInsurance          StageID = 6
	StagePermitApplications StageID = 7
	StageReview             StageID = 8
	StageGenerateDocuments  StageID = 9
	StageSubmitTrack        StageID = 10
)

// FirstStage and LastStage bound the workflow.
const (
	FirstStage = StageWelcome
	LastStage  = StageSubmitTrack
)

func ValidStageID(id StageID) bool {
	return id >= FirstStage && id <= LastStage
}

// VersionTrigger records why a project snapshot was taken.
type VersionTrigger string

const (
	TriggerAuto          VersionTrigger = "auto"
	TriggerManual        VersionTrigger = "manual"
	TriggerStageComplete VersionTrigger = "stage_complete"
	TriggerBeforeRestore VersionTrigger = "before_restore"
)

func ValidVersionTrigger(t VersionTrigger) bool {
	switch t {
	case TriggerAuto, TriggerManual, TriggerStageComplete, TriggerBeforeRestore:
		return true
	}
	return false
}
