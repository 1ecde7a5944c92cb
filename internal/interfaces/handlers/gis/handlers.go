package gis

import (
	"errors"
	"strings"

	gissvc "shoredock-backend/internal/application/gis"
	"shoredock-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *gissvc.Service
}

// GET /api/v1/gis/elevation?address=&parcel=
func (h *Handlers) Elevation(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("address"))
	if query == "" {
		query = strings.TrimSpace(c.Query("parcel"))
	}
	result, err := h.Service.LookupElevation(c.Context(), query)
	if err != nil {
		if errors.Is(err, gissvc.ErrNoQuery) {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, err.Error(), fiber.StatusBadGateway, nil)
	}
	return response.Success(c, "Elevation fetched successfully", result, nil)
}
