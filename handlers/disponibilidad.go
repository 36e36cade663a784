package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lizet96/clinica-dental/gateway"
	"github.com/lizet96/clinica-dental/models"
)

type consultaDisponibilidad struct {
	DoctorID string `query:"doctorId" validate:"required"`
	Fecha    string `query:"fecha" validate:"required,fecha"`
}

// ObtenerDisponibilidad devuelve los horarios libres de un doctor en una fecha
func (h *Handler) ObtenerDisponibilidad(c *fiber.Ctx) error {
	var q consultaDisponibilidad
	if err := c.QueryParser(&q); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F50", "Parámetros inválidos")
	}
	if err := models.Validar(q); err != nil {
		return falloValidacion(c, "F50", err)
	}

	doctor, err := h.backend.BuscarDoctor(c.UserContext(), q.DoctorID)
	if err != nil {
		if gateway.IsNotFound(err) {
			return fallo(c, fiber.StatusNotFound, "F50", "Doctor no encontrado")
		}
		return falloBackend(c, "F50", "Error al obtener el doctor", err)
	}

	disponibilidad := h.disponibilidad.Disponibilidad(c.UserContext(), *doctor, q.Fecha)
	return responder(c, fiber.StatusOK, "S50", disponibilidad)
}
