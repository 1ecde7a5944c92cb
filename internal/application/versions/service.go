package versions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"shoredock-backend/internal/constants"
	"shoredock-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RetentionCap is the number of versions kept per project; oldest entries
// beyond the cap are pruned after each insert. Version numbers keep
// climbing regardless of pruning.
const RetentionCap = 50

var (
	ErrVersionNotFound = errors.New("Version not found")
	ErrProjectNotFound = errors.New("Project not found")
	ErrInvalidTrigger  = errors.New("Invalid version trigger")
	ErrRestoreSnapshot = errors.New("Could not restore: safety snapshot failed")
	ErrCorruptSnapshot = errors.New("Version snapshot data is corrupted")
)

type Service struct {
	DB *gorm.DB
}

// SaveVersion appends a snapshot of the project with the next per-project
// version number and prunes entries beyond the retention cap.
func (s *Service) SaveVersion(ctx context.Context, p *models.Project, trigger constants.VersionTrigger, description *string) (*models.ProjectVersion, error) {
	if p == nil {
		return nil, ErrProjectNotFound
	}
	if !constants.ValidVersionTrigger(trigger) {
		return nil, ErrInvalidTrigger
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("serializing project snapshot: %w", err)
	}

	version := &models.ProjectVersion{
		ProjectID:   p.ProjectID,
		Trigger:     trigger,
		Description: description,
		Data:        datatypes.JSON(data),
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxNumber int
		row := tx.Model(&models.ProjectVersion{}).
			Where("project_id = ?", p.ProjectID).
			Select("COALESCE(MAX(version_number), 0)").
			Row()
		if err := row.Scan(&maxNumber); err != nil {
			return err
		}
		version.VersionNumber = maxNumber + 1
		if err := tx.Create(version).Error; err != nil {
			return err
		}

		// Prune everything older than the newest RetentionCap entries.
		var stale []uuid.UUID
		if err := tx.Model(&models.ProjectVersion{}).
			Where("project_id = ?", p.ProjectID).
			Order("version_number DESC").
			Offset(RetentionCap).
			Pluck("version_id", &stale).Error; err != nil {
			return err
		}
		if len(stale) > 0 {
			if err := tx.Where("version_id IN ?", stale).Delete(&models.ProjectVersion{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Failed to save version: %w", err)
	}
	log.Debug().Str("project_id", p.ProjectID.String()).Int("version", version.VersionNumber).Str("trigger", string(trigger)).Msg("Version saved")
	return version, nil
}

// SaveManualVersion loads the live project and snapshots it with the
// manual trigger. This is the user-initiated "save a checkpoint" path.
func (s *Service) SaveManualVersion(ctx context.Context, projectID uuid.UUID, description *string) (*models.ProjectVersion, error) {
	var p models.Project
	if err := s.DB.WithContext(ctx).Where("project_id = ?", projectID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return s.SaveVersion(ctx, &p, constants.TriggerManual, description)
}

// ListVersions returns a project's versions newest-first.
func (s *Service) ListVersions(ctx context.Context, projectID uuid.UUID) ([]models.ProjectVersion, error) {
	var list []models.ProjectVersion
	if err := s.DB.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("version_number DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch versions: %w", err)
	}
	return list, nil
}

// RestoreVersion overwrites the live project with a snapshot's data. A
// before_restore snapshot of the live state is written first; if that
// write fails the restore aborts and the live project is untouched. The
// ordering is a hard invariant, not an optimization.
func (s *Service) RestoreVersion(ctx context.Context, versionID uuid.UUID) (*models.Project, error) {
	var version models.ProjectVersion
	if err := s.DB.WithContext(ctx).Where("version_id = ?", versionID).First(&version).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, err
	}

	var current models.Project
	if err := s.DB.WithContext(ctx).Where("project_id = ?", version.ProjectID).First(&current).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	if _, err := s.SaveVersion(ctx, &current, constants.TriggerBeforeRestore, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRestoreSnapshot, err)
	}

	var restored models.Project
	if err := json.Unmarshal(version.Data, &restored); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	restored.ProjectID = version.ProjectID
	restored.CreatedAt = current.CreatedAt
	restored.EnsurePermitEntries()

	if err := s.DB.WithContext(ctx).Save(&restored).Error; err != nil {
		return nil, fmt.Errorf("Failed to restore version: %w", err)
	}
	log.Info().Str("project_id", version.ProjectID.String()).Int("version", version.VersionNumber).Msg("Version restored")
	return &restored, nil
}

// ValidationReport is the result of a structural project-data check.
type ValidationReport struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// ValidateProjectData runs a read-only structural sanity check on the live
// project row, used to proactively suggest a restore. Never mutates state.
func (s *Service) ValidateProjectData(ctx context.Context, projectID uuid.UUID) (ValidationReport, error) {
	var p models.Project
	if err := s.DB.WithContext(ctx).Where("project_id = ?", projectID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ValidationReport{}, ErrProjectNotFound
		}
		return ValidationReport{}, err
	}

	var errs []string
	if !constants.ValidStageID(p.CurrentStage) {
		errs = append(errs, fmt.Sprintf("current stage %d is out of range", p.CurrentStage))
	}
	if math.IsNaN(p.Details.EstimatedCost) || math.IsInf(p.Details.EstimatedCost, 0) {
		errs = append(errs, "estimated cost is not a finite number")
	}
	if p.Details.EstimatedCost < 0 {
		errs = append(errs, "estimated cost is negative")
	}
	if p.Site.ElevationFeet != nil && (math.IsNaN(*p.Site.ElevationFeet) || math.IsInf(*p.Site.ElevationFeet, 0)) {
		errs = append(errs, "site elevation is not a finite number")
	}
	hasReservoir := false
	for _, t := range p.RequiredPermits {
		if t == constants.PermitReservoirUse {
			hasReservoir = true
		}
		if !constants.ValidPermitType(t) {
			errs = append(errs, fmt.Sprintf("unknown permit type %q in required permits", t))
		}
	}
	if !hasReservoir {
		errs = append(errs, "required permits are missing the reservoir-use permit")
	}
	for _, t := range p.RequiredPermits {
		if app, ok := p.Permits[t]; !ok || app == nil {
			errs = append(errs, fmt.Sprintf("no application entry for required permit %q", t))
		} else if !constants.ValidApplicationStatus(app.Status) {
			errs = append(errs, fmt.Sprintf("application for %q has unknown status %q", t, app.Status))
		}
	}

	return ValidationReport{IsValid: len(errs) == 0, Errors: errs}, nil
}
