package uploads

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"

	"shoredock-backend/internal/models"
)

var (
	ErrAttachmentNotFound = errors.New("Attachment not found")
	ErrEmptyFile          = errors.New("The uploaded file is empty")
	ErrUnknownKind        = errors.New("Unknown attachment kind")
)

// maxFileSize caps uploads at 25 MB, plenty for scanned site plans.
const maxFileSize = 25 << 20

// Service stores uploaded files on the local filesystem under BlobDir
// and records metadata rows. Blobs are content-addressed by their
// BLAKE2b-256 hash, so re-uploading an identical file reuses storage.
type Service struct {
	DB      *gorm.DB
	BlobDir string
}

func validKind(kind string) bool {
	return kind == models.AttachmentSitePlan || kind == models.AttachmentSupportingDoc
}

// Store writes the file content to the blob directory and records an
// attachment row for the project.
func (s *Service) Store(ctx context.Context, projectID uuid.UUID, kind, fileName, contentType string, content io.Reader) (*models.Attachment, error) {
	if !validKind(kind) {
		return nil, ErrUnknownKind
	}

	data, err := io.ReadAll(io.LimitReader(content, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("file exceeds the %d MB limit", maxFileSize>>20)
	}

	sum := blake2b.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	storagePath := filepath.Join(hash[:2], hash)
	fullPath := filepath.Join(s.BlobDir, storagePath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		if err := os.WriteFile(fullPath, data, 0o644); err != nil {
			return nil, fmt.Errorf("write blob: %w", err)
		}
	}

	attachment := models.Attachment{
		ProjectID:   projectID,
		Kind:        kind,
		FileName:    sanitizeFileName(fileName),
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		ContentHash: hash,
		StoragePath: storagePath,
	}
	if err := s.DB.WithContext(ctx).Create(&attachment).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// Open returns the attachment row and a reader over its blob.
func (s *Service) Open(ctx context.Context, attachmentID uuid.UUID) (*models.Attachment, io.ReadCloser, error) {
	attachment, err := s.Get(ctx, attachmentID)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(filepath.Join(s.BlobDir, attachment.StoragePath))
	if err != nil {
		return nil, nil, fmt.Errorf("open blob: %w", err)
	}
	return attachment, f, nil
}

func (s *Service) Get(ctx context.Context, attachmentID uuid.UUID) (*models.Attachment, error) {
	var attachment models.Attachment
	err := s.DB.WithContext(ctx).First(&attachment, "attachment_id = ?", attachmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttachmentNotFound
		}
		return nil, err
	}
	return &attachment, nil
}

// List returns a project's attachments, newest first.
func (s *Service) List(ctx context.Context, projectID uuid.UUID) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := s.DB.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&attachments).Error
	return attachments, err
}

// Delete removes the attachment row, and the blob when no other row
// references the same content.
func (s *Service) Delete(ctx context.Context, attachmentID uuid.UUID) error {
	attachment, err := s.Get(ctx, attachmentID)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(&models.Attachment{}, "attachment_id = ?", attachmentID).Error; err != nil {
		return err
	}

	var remaining int64
	s.DB.WithContext(ctx).Model(&models.Attachment{}).
		Where("content_hash = ?", attachment.ContentHash).
		Count(&remaining)
	if remaining == 0 {
		os.Remove(filepath.Join(s.BlobDir, attachment.StoragePath))
	}
	return nil
}

func sanitizeFileName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "upload"
	}
	return name
}
