package emails

import (
	"errors"

	emailsvc "shoredock-backend/internal/application/emails"
	projsvc "shoredock-backend/internal/application/projects"
	"shoredock-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Projects *projsvc.Service
}

// GET /api/v1/projects/:id/email-drafts
func (h *Handlers) Drafts(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid project id", fiber.StatusBadRequest, nil)
	}
	project, err := h.Projects.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, projsvc.ErrProjectNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	drafts := emailsvc.DraftsForProject(project)
	if drafts == nil {
		drafts = []emailsvc.Draft{}
	}
	return response.Success(c, "Email drafts fetched successfully", drafts, nil)
}
