package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Health responde el estado del proceso
func (h *Handler) Health(c *fiber.Ctx) error {
	data := fiber.Map{
		"status":        "ok",
		"version":       h.version,
		"timestamp":     h.ahora().UTC(),
		"base_de_datos": h.bitacora != nil,
	}
	if h.formularios != nil {
		data["formularios_abiertos"] = h.formularios.Total()
	}
	return responder(c, fiber.StatusOK, "S00", data)
}
