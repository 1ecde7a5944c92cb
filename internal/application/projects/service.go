package projects

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"shoredock-backend/internal/application/workflow"
	"shoredock-backend/internal/constants"
	"shoredock-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound   = errors.New("Project not found")
	ErrUnknownPermitType = errors.New("Unknown permit type")
	ErrUnknownStatus     = errors.New("Unknown application status")
	ErrNoApplication     = errors.New("No application exists for that permit")
)

type Service struct {
	DB *gorm.DB
	// BlobDir is where attachment files live; explicit project deletion
	// removes its blobs from here.
	BlobDir string
}

// Create makes a new, empty project. The permit invariant is applied on
// save, so a fresh project already requires the reservoir-use permit.
func (s *Service) Create(ctx context.Context, name string) (*models.Project, error) {
	if name == "" {
		name = "Untitled Project"
	}
	p := &models.Project{
		Name:         name,
		CurrentStage: constants.FirstStage,
	}
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("Failed to create project: %w", err)
	}
	return p, nil
}

// EnsureFirstRun returns the most recent project, creating one when the
// store is empty (first launch).
func (s *Service) EnsureFirstRun(ctx context.Context) (*models.Project, error) {
	var p models.Project
	err := s.DB.WithContext(ctx).Order("updated_at DESC").First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.Create(ctx, "My Shoreline Project")
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var p models.Project
	if err := s.DB.WithContext(ctx).Where("project_id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) List(ctx context.Context) ([]models.Project, error) {
	var list []models.Project
	if err := s.DB.WithContext(ctx).Order("updated_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch projects: %w", err)
	}
	return list, nil
}

// Save persists the whole aggregate. Implements workflow.ProjectSaver.
func (s *Service) Save(ctx context.Context, p *models.Project) error {
	if p == nil {
		return ErrProjectNotFound
	}
	if err := s.DB.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("Failed to save project: %w", err)
	}
	return nil
}

// UpdateInput carries whole field-group replacements; nil groups are left
// untouched. Writes always carry full snapshots of a group, never diffs.
type UpdateInput struct {
	Name      *string                `json:"name"`
	Owner     *models.Owner          `json:"owner"`
	Details   *models.ProjectDetails `json:"details"`
	Site      *models.SiteInfo       `json:"site"`
	Insurance *models.Insurance      `json:"insurance"`
}

// Update applies group replacements and persists. Changing details or site
// re-runs the eligibility evaluator so the required permit set can never
// go stale.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*models.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && *in.Name != "" {
		p.Name = *in.Name
	}
	if in.Owner != nil {
		p.Owner = *in.Owner
	}
	if in.Details != nil {
		p.Details = *in.Details
	}
	if in.Site != nil {
		p.Site = *in.Site
	}
	if in.Insurance != nil {
		p.Insurance = *in.Insurance
	}
	if in.Details != nil || in.Site != nil {
		workflow.RefreshRequiredPermits(p)
	}
	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateApplication moves one permit application's status, stamping the
// submission time on the submitted transition.
func (s *Service) UpdateApplication(ctx context.Context, id uuid.UUID, permitType constants.PermitType, status constants.ApplicationStatus, notes *string) (*models.Project, error) {
	if !constants.ValidPermitType(permitType) {
		return nil, ErrUnknownPermitType
	}
	if !constants.ValidApplicationStatus(status) {
		return nil, ErrUnknownStatus
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	app, ok := p.Permits[permitType]
	if !ok || app == nil {
		return nil, ErrNoApplication
	}
	app.Status = status
	if status == constants.AppSubmitted && app.SubmittedAt == nil {
		now := time.Now()
		app.SubmittedAt = &now
	}
	if notes != nil {
		app.Notes = *notes
	}
	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the project row and its attachment blobs. Version history
// is deliberately left in place so a deletion can be audited; see the
// retention notes in DESIGN.md.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	var attachments []models.Attachment
	if err := s.DB.WithContext(ctx).Where("project_id = ?", id).Find(&attachments).Error; err != nil {
		return fmt.Errorf("Failed to fetch attachments: %w", err)
	}
	for _, a := range attachments {
		if a.StoragePath == "" {
			continue
		}
		if err := os.Remove(a.StoragePath); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", a.StoragePath).Msg("Could not remove attachment blob")
		}
	}
	if err := s.DB.WithContext(ctx).Where("project_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
		return fmt.Errorf("Failed to delete attachments: %w", err)
	}
	if err := s.DB.WithContext(ctx).Unscoped().Where("project_id = ?", id).Delete(&models.Project{}).Error; err != nil {
		return fmt.Errorf("Failed to delete project: %w", err)
	}
	log.Info().Str("project_id", id.String()).Msg("Project deleted")
	return nil
}
