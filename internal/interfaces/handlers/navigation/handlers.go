package navigation

import (
	"errors"
	"strconv"

	projsvc "shoredock-backend/internal/application/projects"
	"shoredock-backend/internal/application/workflow"
	"shoredock-backend/internal/constants"
	"shoredock-backend/internal/models"
	"shoredock-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Projects *projsvc.Service
	Sessions *workflow.Sessions
}

// GET /api/v1/projects/:id/stages
func (h *Handlers) Stages(c *fiber.Ctx) error {
	project, ok := h.load(c)
	if !ok {
		return nil
	}
	return response.Success(c, "Stages fetched successfully", workflow.StageStates(project), nil)
}

// GET /api/v1/projects/:id/stages/:stageId/validation
func (h *Handlers) Validation(c *fiber.Ctx) error {
	project, ok := h.load(c)
	if !ok {
		return nil
	}
	raw, err := strconv.Atoi(c.Params("stageId"))
	if err != nil || !constants.ValidStageID(constants.StageID(raw)) {
		return response.Error(c, "Unknown stage", fiber.StatusBadRequest, nil)
	}
	result := workflow.ValidateStage(constants.StageID(raw), project)
	return response.Success(c, "Stage validated successfully", result, nil)
}

type nextBody struct {
	Confirmed bool `json:"confirmed"`
}

// POST /api/v1/projects/:id/navigation/next
func (h *Handlers) Next(c *fiber.Ctx) error {
	project, ok := h.load(c)
	if !ok {
		return nil
	}
	var body nextBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
		}
	}
	nav := h.Sessions.Navigator(project)
	result, err := nav.Next(c.Context(), body.Confirmed)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, fiber.Map{"result": result})
	}
	h.Sessions.Remember(nav)
	return response.Success(c, "Navigation evaluated", result, nil)
}

// POST /api/v1/projects/:id/navigation/previous
func (h *Handlers) Previous(c *fiber.Ctx) error {
	project, ok := h.load(c)
	if !ok {
		return nil
	}
	nav := h.Sessions.Navigator(project)
	result, err := nav.Previous(c.Context())
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, fiber.Map{"result": result})
	}
	h.Sessions.Remember(nav)
	return response.Success(c, "Navigation evaluated", result, nil)
}

type gotoBody struct {
	Stage int `json:"stage"`
}

// POST /api/v1/projects/:id/navigation/goto
// Jumps only to stages the project has already reached; skipping ahead is
// refused here with the stage's accessibility flag.
func (h *Handlers) GoTo(c *fiber.Ctx) error {
	project, ok := h.load(c)
	if !ok {
		return nil
	}
	var body gotoBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	target := constants.StageID(body.Stage)
	if !constants.ValidStageID(target) {
		return response.Error(c, "Unknown stage", fiber.StatusBadRequest, nil)
	}
	if target > project.CurrentStage {
		result := workflow.MoveResult{
			Outcome:         workflow.MoveBlocked,
			Stage:           project.CurrentStage,
			BlockingMessage: "That stage has not been reached yet.",
		}
		return response.Success(c, "Navigation evaluated", result, nil)
	}
	nav := h.Sessions.Navigator(project)
	result, err := nav.GoToStage(c.Context(), target)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, fiber.Map{"result": result})
	}
	h.Sessions.Remember(nav)
	return response.Success(c, "Navigation evaluated", result, nil)
}

// load fetches the project or writes the error response. The bool tells
// the caller whether to continue.
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
