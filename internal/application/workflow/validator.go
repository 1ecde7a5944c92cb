package workflow

import (
	"strings"

	"shoredock-backend/internal/constants"
	"shoredock-backend/internal/models"
	"shoredock-backend/internal/pkg/validation"
)

// ValidationResult reports whether a stage is fully complete, whether the
// user may advance past it, and any blocking or warning message. A blocking
// condition always suppresses the warning.
type ValidationResult struct {
	IsComplete      bool   `json:"is_complete"`
	CanProceed      bool   `json:"can_proceed"`
	BlockingMessage string `json:"blocking_message,omitempty"`
	WarningMessage  string `json:"warning_message,omitempty"`
}

func blocked(msg string) ValidationResult {
	return ValidationResult{IsComplete: false, CanProceed: false, BlockingMessage: msg}
}

func open(complete bool, missing []string) ValidationResult {
	res := ValidationResult{IsComplete: complete, CanProceed: true}
	if !complete && len(missing) > 0 {
		res.WarningMessage = "Missing: " + strings.Join(missing, ", ")
	}
	return res
}

// ValidateStage evaluates one stage against the project. Never returns an
// error and never panics for well-typed input; data problems come back as
// messages.
func ValidateStage(id constants.StageID, p *models.Project) ValidationResult {
	if p == nil {
		return blocked("No project is loaded.")
	}

	switch id {
	case constants.StageWelcome:
		return ValidationResult{IsComplete: true, CanProceed: true}

	case constants.StagePropertyOwner:
		if !validation.OwnerCanProceed(p.Owner) {
			return blocked("First name, last name, and a valid email are required before continuing.")
		}
		return open(validation.OwnerComplete(p.Owner), validation.OwnerMissingFields(p.Owner))

	case constants.StageProjectDetails:
		if !validation.DetailsCanProceed(p.Details) {
			return blocked("Describe the project in at least 10 characters before continuing.")
		}
		return open(validation.DetailsComplete(p.Details), validation.DetailsMissingFields(p.Details))

	case constants.StagePropertySite:
		if !validation.SiteCanProceed(p.Site) {
			return blocked("The property address is required before continuing.")
		}
		return open(validation.SiteComplete(p.Site), validation.SiteMissingFields(p.Site))

	case constants.StageSitePlan:
		// The drawing canvas lives in the UI shell; this stage only cares
		// whether a plan has been attached, and never blocks.
		if p.Site.SitePlanFileID == nil {
			return open(false, []string{"site plan"})
		}
		return ValidationResult{IsComplete: true, CanProceed: true}

	case constants.StageInsurance:
		// Always navigable, but warn when declared coverage is missing details.
		return open(validation.InsuranceComplete(p.Insurance), validation.InsuranceMissingFields(p.Insurance))

	case constants.StagePermitApplications:
		return open(applicationsStarted(p))

	case constants.StageReview, constants.StageGenerateDocuments:
		return ValidationResult{IsComplete: true, CanProceed: true}

	case constants.StageSubmitTrack:
		return open(applicationsSubmitted(p))
	}

	return blocked("Unknown stage.")
}

// applicationsStarted: every required permit application has been opened.
func applicationsStarted(p *models.Project) (bool, []string) {
	var missing []string
	for _, t := range p.RequiredPermits {
		app, ok := p.Permits[t]
		if !ok || app == nil || app.Status == constants.AppNotStarted {
			missing = append(missing, string(t)+" application")
		}
	}
	return len(missing) == 0, missing
}

// applicationsSubmitted: every required permit application has been
// submitted or approved.
func applicationsSubmitted(p *models.Project) (bool, []string) {
	var missing []string
	for _, t := range p.RequiredPermits {
		app, ok := p.Permits[t]
		if !ok || app == nil || (app.Status != constants.AppSubmitted && app.Status != constants.AppApproved) {
			missing = append(missing, string(t)+" submission")
		}
	}
	return len(missing) == 0, missing
}
