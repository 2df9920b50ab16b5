package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/outlierlens/outlierlens-go/internal/registry"
)

type GroupsHandler struct {
	reg *registry.Registry
}

func NewGroupsHandler(reg *registry.Registry) *GroupsHandler {
	return &GroupsHandler{reg: reg}
}

// List handles GET /api/channel-groups
func (h *GroupsHandler) List(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"groups": h.reg.Groups()})
}
