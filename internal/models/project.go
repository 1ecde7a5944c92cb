package models

import (
	"time"

	"shoredock-backend/internal/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Owner is the property-owner field group. Stored as a JSON column because
// the aggregate is always read and written whole.
type Owner struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	MailingAddress string `json:"mailing_address"`
	ParcelNumber   string `json:"parcel_number"`
	IsAgent        bool   `json:"is_agent"`
}

// ProjectDetails describes the planned improvement. Dates are YYYY-MM-DD
// strings as entered in the wizard.
type ProjectDetails struct {
	Category                    constants.ProjectCategory   `json:"category"`
	ImprovementTypes            []constants.ImprovementType `json:"improvement_types"`
	Description                 string                      `json:"description"`
	EstimatedCost               float64                     `json:"estimated_cost"`
	PlannedStartDate            string                      `json:"planned_start_date"`
	PlannedCompletionDate       string                      `json:"planned_completion_date"`
	InWater                     bool                        `json:"in_water"`
	BelowHighWaterLine          bool                        `json:"below_high_water_line"`
	WithinShorelineJurisdiction bool                        `json:"within_shoreline_jurisdiction"`
	HasExistingStructure        bool                        `json:"has_existing_structure"`
	ExistingStructureNote       string                      `json:"existing_structure_note"`
}

// SiteInfo is the property/site field group. Elevation comes from the GIS
// collaborator and may be absent; it is never validated beyond finiteness.
type SiteInfo struct {
	PropertyAddress  string      `json:"property_address"`
	ParcelNumber     string      `json:"parcel_number"`
	ElevationFeet    *float64    `json:"elevation_feet"`
	LotSizeSqFt      *float64    `json:"lot_size_sq_ft"`
	WaterFrontageFt  *float64    `json:"water_frontage_ft"`
	SitePlanFileID   *uuid.UUID  `json:"site_plan_file_id"`
	SupportingDocIDs []uuid.UUID `json:"supporting_doc_ids"`
}

// Insurance is the insurance field group.
type Insurance struct {
	HasInsurance   bool   `json:"has_insurance"`
	Carrier        string `json:"carrier"`
	PolicyNumber   string `json:"policy_number"`
	ExpirationDate string `json:"expiration_date"`
}

// PermitApplication tracks one permit through preparation and submission.
type PermitApplication struct {
	Status          constants.ApplicationStatus `json:"status"`
	FieldsCompleted int                         `json:"fields_completed"`
	FieldsTotal     int                         `json:"fields_total"`
	SubmittedAt     *time.Time                  `json:"submitted_at"`
	Notes           string                      `json:"notes"`
}

// Project is the aggregate root. Nested field groups live in JSON columns;
// the whole row is persisted on every mutation.
type Project struct {
	ProjectID       uuid.UUID                                   `gorm:"column:project_id;type:uuid;primaryKey" json:"project_id"`
	Name            string                                      `gorm:"column:name;not null" json:"name"`
	Owner           Owner                                       `gorm:"column:owner;serializer:json" json:"owner"`
	Details         ProjectDetails                              `gorm:"column:details;serializer:json" json:"details"`
	Site            SiteInfo                                    `gorm:"column:site;serializer:json" json:"site"`
	Insurance       Insurance                                   `gorm:"column:insurance;serializer:json" json:"insurance"`
	RequiredPermits []constants.PermitType                      `gorm:"column:required_permits;serializer:json" json:"required_permits"`
	Permits         map[constants.PermitType]*PermitApplication `gorm:"column:permits;serializer:json" json:"permits"`
	CurrentStage    constants.StageID                           `gorm:"column:current_stage;not null;default:1" json:"current_stage"`
	CreatedAt       time.Time                                   `json:"createdAt"`
	UpdatedAt       time.Time                                   `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt                              `gorm:"index" json:"-"`
}

func (Project) TableName() string {
	return "projects"
}

// BeforeCreate sets the UUID if not set.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ProjectID == uuid.Nil {
		p.ProjectID = uuid.New()
	}
	return nil
}

// BeforeSave enforces the aggregate invariant: the reservoir-use permit is
// always required, and every required permit has an application entry.
func (p *Project) BeforeSave(tx *gorm.DB) error {
	p.EnsurePermitEntries()
	return nil
}

// EnsurePermitEntries repairs the required-permits invariant in place.
func (p *Project) EnsurePermitEntries() {
	hasReservoir := false
	for _, t := range p.RequiredPermits {
		if t == constants.PermitReservoirUse {
			hasReservoir = true
			break
		}
	}
	if !hasReservoir {
		p.RequiredPermits = append([]constants.PermitType{constants.PermitReservoirUse}, p.RequiredPermits...)
	}
	if p.Permits == nil {
		p.Permits = make(map[constants.PermitType]*PermitApplication)
	}
	for _, t := range p.RequiredPermits {
		if _, ok := p.Permits[t]; !ok {
			p.Permits[t] = &PermitApplication{Status: constants.AppNotStarted}
		}
	}
	if p.CurrentStage < constants.FirstStage {
		p.CurrentStage = constants.FirstStage
	}
}
