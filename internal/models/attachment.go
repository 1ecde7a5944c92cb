package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attachment kinds.
const (
	AttachmentSitePlan      = "site_plan"
	AttachmentSupportingDoc = "supporting_doc"
)

// Attachment is a file blob stored under the data directory, referenced
// from a project's site field group. ContentHash is the blake2b-256 hex
// digest of the stored bytes.
type Attachment struct {
	AttachmentID uuid.UUID `gorm:"column:attachment_id;type:uuid;primaryKey" json:"attachment_id"`
	ProjectID    uuid.UUID `gorm:"column:project_id;type:uuid;not null;index" json:"project_id"`
	Kind         string    `gorm:"column:kind;type:varchar(20);not null" json:"kind"`
	FileName     string    `gorm:"column:file_name;not null" json:"file_name"`
	ContentType  string    `gorm:"column:content_type" json:"content_type"`
	SizeBytes    int64     `gorm:"column:size_bytes;not null" json:"size_bytes"`
	ContentHash  string    `gorm:"column:content_hash;not null" json:"content_hash"`
	StoragePath  string    `gorm:"column:storage_path;not null" json:"storage_path"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Attachment) TableName() string {
	return "attachments"
}

func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.AttachmentID == uuid.Nil {
		a.AttachmentID = uuid.New()
	}
	return nil
}
