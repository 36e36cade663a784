package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lizet96/clinica-dental/horarios"
	"github.com/lizet96/clinica-dental/models"
)

type consultaHorario struct {
	Inicio string `query:"inicio" validate:"required,hhmm"`
	Fin    string `query:"fin" validate:"required,hhmm"`
}

// GenerarHorario previsualiza los horarios de un doctor antes de guardarlo
func (h *Handler) GenerarHorario(c *fiber.Ctx) error {
	var q consultaHorario
	if err := c.QueryParser(&q); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F95", "Parámetros inválidos")
	}
	if err := models.Validar(q); err != nil {
		return falloValidacion(c, "F95", err)
	}

	horario := horarios.GenerarHorario(q.Inicio, q.Fin)
	return responder(c, fiber.StatusOK, "S95", fiber.Map{
		"inicio":  q.Inicio,
		"fin":     q.Fin,
		"horario": horario,
		"total":   len(horario),
	})
}
