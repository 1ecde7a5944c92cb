package versions

import (
	"errors"
	"strings"

	verssvc "shoredock-backend/internal/application/versions"
	"shoredock-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *verssvc.Service
}

// GET /api/v1/projects/:id/versions
func (h *Handlers) List(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid project id", fiber.StatusBadRequest, nil)
	}
	list, err := h.Service.ListVersions(c.Context(), id)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Versions fetched successfully", list, nil)
}

type snapshotBody struct {
	Description string `json:"description"`
}

// POST /api/v1/projects/:id/versions — manual snapshot
func (h *Handlers) Create(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid project id", fiber.StatusBadRequest, nil)
	}
	var body snapshotBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
		}
	}
	var description *string
	if s := strings.TrimSpace(body.Description); s != "" {
		description = &s
	}
	version, err := h.Service.SaveManualVersion(c.Context(), id, description)
	if err != nil {
		if errors.Is(err, verssvc.ErrProjectNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Version saved successfully", version, nil)
}

// POST /api/v1/projects/:id/versions/:versionId/restore
func (h *Handlers) Restore(c *fiber.Ctx) error {
	versionID, err := uuid.Parse(c.Params("versionId"))
	if err != nil {
		return response.Error(c, "Invalid version id", fiber.StatusBadRequest, nil)
	}
	project, err := h.Service.RestoreVersion(c.Context(), versionID)
	if err != nil {
		switch {
		case errors.Is(err, verssvc.ErrVersionNotFound), errors.Is(err, verssvc.ErrProjectNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case errors.Is(err, verssvc.ErrCorruptSnapshot):
			return response.Error(c, err.Error(), fiber.StatusUnprocessableEntity, nil)
		default:
			return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Version restored successfully", project, nil)
}

// GET /api/v1/projects/:id/versions/validate
func (h *Handlers) Validate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid project id", fiber.StatusBadRequest, nil)
	}
	report, err := h.Service.ValidateProjectData(c.Context(), id)
	if err != nil {
		if errors.Is(err, verssvc.ErrProjectNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Project data validated", report, nil)
}
