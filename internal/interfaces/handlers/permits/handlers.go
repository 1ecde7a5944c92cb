package permits

import (
	"errors"

	permsvc "shoredock-backend/internal/application/permits"
	projsvc "shoredock-backend/internal/application/projects"
	"shoredock-backend/internal/models"
	"shoredock-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Projects *projsvc.Service
}

// GET /api/v1/permits/catalog
func (h *Handlers) Catalog(c *fiber.Ctx) error {
	return response.Success(c, "Permit catalog fetched successfully", permsvc.All(), nil)
}

// GET /api/v1/projects/:id/recommendations
func (h *Handlers) Recommendations(c *fiber.Ctx) error {
	project, ok := h.load(c)
	if !ok {
		return nil
	}
	recs := permsvc.DetermineRequiredPermits(project.Details, project.Site.ElevationFeet)
	return response.Success(c, "Recommendations fetched successfully", recs, nil)
}

// GET /api/v1/projects/:id/recommendations/summary
func (h *Handlers) Summary(c *fiber.Ctx) error {
	project, ok := h.load(c)
	if !ok {
		return nil
	}
	recs := permsvc.DetermineRequiredPermits(project.Details, project.Site.ElevationFeet)
	return response.Success(c, "Recommendation summary fetched successfully", permsvc.Summarize(recs), nil)
}

func (h *Handlers) load(c *fiber.Ctx) (*models.Project, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		response.Error(c, "Invalid project id", fiber.StatusBadRequest, nil)
		return nil, false
	}
	project, err := h.Projects.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, projsvc.ErrProjectNotFound) {
			response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		} else {
			response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
		}
		return nil, false
	}
	return project, true
}
