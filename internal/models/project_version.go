package models

import (
	"time"

	"shoredock-backend/internal/constants"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectVersion is one immutable snapshot of a project, appended on manual
// save, auto-save, stage completion, and immediately before any restore.
// Data holds the full serialized Project at that instant.
type ProjectVersion struct {
	VersionID     uuid.UUID                `gorm:"column:version_id;type:uuid;primaryKey" json:"version_id"`
	ProjectID     uuid.UUID                `gorm:"column:project_id;type:uuid;not null;index" json:"project_id"`
	VersionNumber int                      `gorm:"column:version_number;not null" json:"version_number"`
	Trigger       constants.VersionTrigger `gorm:"column:trigger_type;type:varchar(20);not null" json:"trigger"`
	Description   *string                  `gorm:"column:description" json:"description"`
	Data          datatypes.JSON           `gorm:"column:data;not null" json:"data"`
	CreatedAt     time.Time                `json:"createdAt"`
}

func (ProjectVersion) TableName() string {
	return "project_versions"
}

func (v *ProjectVersion) BeforeCreate(tx *gorm.DB) error {
	if v.VersionID == uuid.Nil {
		v.VersionID = uuid.New()
	}
	return nil
}
