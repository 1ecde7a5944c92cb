package constants

// PermitType identifies a regulatory permit. The set is closed: every value
// has a catalog entry and switches over it should be exhaustive.
type PermitType string

const (
	PermitReservoirUse         PermitType = "reservoir_use"
	PermitShorelineExemption   PermitType = "shoreline_exemption"
	PermitShorelineSubstantial PermitType = "shoreline_substantial_development"
	PermitHydraulicApproval    PermitType = "hydraulic_project_approval"
	PermitUSACESection10       PermitType = "usace_section_10"
	PermitBuilding             PermitType = "building"
)

// AllPermitTypes in catalog order. Order matters: recommendation lists and
// summaries preserve it.
var AllPermitTypes = []PermitType{
	PermitReservoirUse,
	PermitShorelineExemption,
	PermitShorelineSubstantial,
	PermitHydraulicApproval,
	PermitUSACESection10,
	PermitBuilding,
}

func ValidPermitType(p PermitType) bool {
	for _, t := range AllPermitTypes {
		if t == p {
			return true
		}
	}
	return false
}

// SubmitMethod is how a completed application reaches the agency.
type SubmitMethod string

const (
	SubmitEmail  SubmitMethod = "email"
	SubmitOnline SubmitMethod = "online"
	SubmitMail   SubmitMethod = "mail"
)

// ApplicationStatus tracks a single permit application through submission.
type ApplicationStatus string

const (
	AppNotStarted ApplicationStatus = "not_started"
	AppInProgress ApplicationStatus = "in_progress"
	AppSubmitted  ApplicationStatus = "submitted"
	AppApproved   ApplicationStatus = "approved"
)

func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case AppNotStarted, AppInProgress, AppSubmitted, AppApproved:
		return true
	}
	return false
}
