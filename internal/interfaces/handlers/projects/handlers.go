package projects

import (
	"errors"

	projsvc "shoredock-backend/internal/application/projects"
	"shoredock-backend/internal/application/workflow"
	"shoredock-backend/internal/constants"
	"shoredock-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service  *projsvc.Service
	Autosave *projsvc.Autosaver
	Sessions *workflow.Sessions
}

type createBody struct {
	Name string `json:"name"`
}

// POST /api/v1/projects
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body createBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
		}
	}
	project, err := h.Service.Create(c.Context(), body.Name)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Project created successfully", project, nil)
}

// GET /api/v1/projects
func (h *Handlers) List(c *fiber.Ctx) error {
	projects, err := h.Service.List(c.Context())
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Projects fetched successfully", projects, nil)
}

// GET /api/v1/projects/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid project id", fiber.StatusBadRequest, nil)
	}
	project, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, projsvc.ErrProjectNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Project fetched successfully", project, nil)
}

// PUT /api/v1/projects/:id — whole-aggregate update on the debounced save
// path. The response reflects the updated aggregate immediately; an auto
// version snapshot is queued behind the autosaver.
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid project id", fiber.StatusBadRequest, nil)
	}
	var in projsvc.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	project, err := h.Service.Update(c.Context(), id, in)
	if err != nil {
		if errors.Is(err, projsvc.ErrProjectNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	if h.Autosave != nil {
		h.Autosave.Queue(project)
	}
	return response.Success(c, "Project updated successfully", project, nil)
}

// DELETE /api/v1/projects/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid project id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, projsvc.ErrProjectNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	if h.Sessions != nil {
		h.Sessions.Forget(id)
	}
	return response.Success(c, "Project deleted successfully", fiber.Map{"project_id": id}, nil)
}

type applicationBody struct {
	Status constants.ApplicationStatus `json:"status"`
	Notes  *string                     `json:"notes"`
}

// PATCH /api/v1/projects/:id/applications/:permitType
func (h *Handlers) UpdateApplication(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid project id", fiber.StatusBadRequest, nil)
	}
	permitType := constants.PermitType(c.Params("permitType"))
	var body applicationBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	project, err := h.Service.UpdateApplication(c.Context(), id, permitType, body.Status, body.Notes)
	if err != nil {
		switch {
		case errors.Is(err, projsvc.ErrProjectNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case errors.Is(err, projsvc.ErrUnknownPermitType),
			errors.Is(err, projsvc.ErrUnknownStatus),
			errors.Is(err, projsvc.ErrNoApplication):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Application updated successfully", project, nil)
}
