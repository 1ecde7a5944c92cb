package uploads

import (
	"errors"

	projsvc "shoredock-backend/internal/application/projects"
	uploadsvc "shoredock-backend/internal/application/uploads"
	"shoredock-backend/internal/models"
	"shoredock-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Handlers bundles attachment handlers with the services.
type Handlers struct {
	Service  *uploadsvc.Service
	Projects *projsvc.Service
}

// Upload POST /api/v1/projects/:id/attachments — multipart form with a
// "file" part and an optional "kind" field (site_plan default). A site
// plan upload is linked into the project's site field group.
func (h *Handlers) Upload(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid project id", fiber.StatusBadRequest, nil)
	}
	project, err := h.Projects.Get(c.Context(), projectID)
	if err != nil {
		if errors.Is(err, projsvc.ErrProjectNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, "A file part is required", fiber.StatusBadRequest, nil)
	}
	kind := c.FormValue("kind", models.AttachmentSitePlan)

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, "Could not read the uploaded file", fiber.StatusBadRequest, nil)
	}
	defer file.Close()

	attachment, err := h.Service.Store(c.Context(), projectID, kind,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		switch {
		case errors.Is(err, uploadsvc.ErrUnknownKind), errors.Is(err, uploadsvc.ErrEmptyFile):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			log.Error().Err(err).Str("project_id", projectID.String()).Msg("Attachment store failed")
			return response.Error(c, "Failed to store attachment", fiber.StatusInternalServerError, nil)
		}
	}

	// Link the attachment into the site field group.
	switch kind {
	case models.AttachmentSitePlan:
		project.Site.SitePlanFileID = &attachment.AttachmentID
	case models.AttachmentSupportingDoc:
		project.Site.SupportingDocIDs = append(project.Site.SupportingDocIDs, attachment.AttachmentID)
	}
	if err := h.Projects.Save(c.Context(), project); err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}

	return response.SuccessCreated(c, "Attachment uploaded successfully", attachment, nil)
}

// List GET /api/v1/projects/:id/attachments
func (h *Handlers) List(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid project id", fiber.StatusBadRequest, nil)
	}
	attachments, err := h.Service.List(c.Context(), projectID)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Attachments fetched successfully", attachments, nil)
}

// Download GET /api/v1/projects/:id/attachments/:attachmentId
func (h *Handlers) Download(c *fiber.Ctx) error {
	attachmentID, err := uuid.Parse(c.Params("attachmentId"))
	if err != nil {
		return response.Error(c, "Invalid attachment id", fiber.StatusBadRequest, nil)
	}
	attachment, reader, err := h.Service.Open(c.Context(), attachmentID)
	if err != nil {
		if errors.Is(err, uploadsvc.ErrAttachmentNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	if attachment.ContentType != "" {
		c.Set(fiber.HeaderContentType, attachment.ContentType)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+attachment.FileName+`"`)
	return c.SendStream(reader, int(attachment.SizeBytes))
}

// Delete DELETE /api/v1/projects/:id/attachments/:attachmentId
func (h *Handlers) Delete(c *fiber.Ctx) error {
	attachmentID, err := uuid.Parse(c.Params("attachmentId"))
	if err != nil {
		return response.Error(c, "Invalid attachment id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), attachmentID); err != nil {
		if errors.Is(err, uploadsvc.ErrAttachmentNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Attachment deleted successfully", fiber.Map{"attachment_id": attachmentID}, nil)
}
