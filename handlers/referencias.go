package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// ObtenerPaises lista los países del catálogo
func (h *Handler) ObtenerPaises(c *fiber.Ctx) error {
	paises, err := h.backend.ListarPaises(c.UserContext())
	if err != nil {
		return falloBackend(c, "F90", "Error al obtener países", err)
	}
	return responder(c, fiber.StatusOK, "S90", fiber.Map{"paises": paises})
}

// ObtenerCiudades lista las ciudades de un país
func (h *Handler) ObtenerCiudades(c *fiber.Ctx) error {
	ciudades, err := h.backend.ListarCiudades(c.UserContext(), c.Params("codigo"))
	if err != nil {
		return falloBackend(c, "F91", "Error al obtener ciudades", err)
	}
	return responder(c, fiber.StatusOK, "S91", fiber.Map{"ciudades": ciudades})
}

// ObtenerSucursales lista las sedes de la clínica
func (h *Handler) ObtenerSucursales(c *fiber.Ctx) error {
	sucursales, err := h.backend.ListarSucursales(c.UserContext())
	if err != nil {
		return falloBackend(c, "F92", "Error al obtener sucursales", err)
	}
	return responder(c, fiber.StatusOK, "S92", fiber.Map{"sucursales": sucursales})
}
