package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lizet96/clinica-dental/horarios"
	"github.com/lizet96/clinica-dental/models"
)

// ObtenerDoctores lista los doctores
func (h *Handler) ObtenerDoctores(c *fiber.Ctx) error {
	doctores, err := h.backend.ListarDoctores(c.UserContext())
	if err != nil {
		return falloBackend(c, "F10", "Error al obtener doctores", err)
	}
	return responder(c, fiber.StatusOK, "S10", fiber.Map{"doctores": doctores})
}

// CrearDoctor registra un doctor. El horario se deriva de la hora de inicio y fin.
func (h *Handler) CrearDoctor(c *fiber.Ctx) error {
	var req models.DoctorRequest
	if err := c.BodyParser(&req); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F11", "Datos inválidos")
	}
	if err := models.Validar(req); err != nil {
		return falloValidacion(c, "F11", err)
	}
	if len(horarios.GenerarHorario(req.HorarioInicio, req.HorarioFin)) == 0 {
		return fallo(c, fiber.StatusBadRequest, "F11", "La hora de inicio debe ser anterior a la hora de fin")
	}

	doctor, err := h.backend.CrearDoctor(c.UserContext(), req)
	if err != nil {
		return falloBackend(c, "F11", "Error al crear doctor", err)
	}

	data := fiber.Map{"doctor": doctor}
	h.recargarDoctores(c, data)
	return responder(c, fiber.StatusCreated, "S11", data)
}

// ActualizarDoctor edita un doctor; también activa o desactiva con "activo"
func (h *Handler) ActualizarDoctor(c *fiber.Ctx) error {
	id := c.Params("id")
	var upd models.DoctorUpdate
	if err := c.BodyParser(&upd); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F12", "Datos inválidos")
	}
	if err := models.Validar(upd); err != nil {
		return falloValidacion(c, "F12", err)
	}
	if upd.HorarioInicio != nil || upd.HorarioFin != nil {
		// Una sola hora: la otra se toma del doctor guardado
		if upd.HorarioInicio == nil || upd.HorarioFin == nil {
			actual, err := h.backend.BuscarDoctor(c.UserContext(), id)
			if err != nil {
				return falloBackend(c, "F12", "Error al actualizar doctor", err)
			}
			if upd.HorarioInicio == nil {
				upd.HorarioInicio = &actual.HorarioInicio
			} else {
				upd.HorarioFin = &actual.HorarioFin
			}
		}
		if len(horarios.GenerarHorario(*upd.HorarioInicio, *upd.HorarioFin)) == 0 {
			return fallo(c, fiber.StatusBadRequest, "F12", "La hora de inicio debe ser anterior a la hora de fin")
		}
	}

	doctor, err := h.backend.ActualizarDoctor(c.UserContext(), id, upd)
	if err != nil {
		return falloBackend(c, "F12", "Error al actualizar doctor", err)
	}

	data := fiber.Map{"doctor": doctor}
	h.recargarDoctores(c, data)
	return responder(c, fiber.StatusOK, "S12", data)
}

// EliminarDoctor borra un doctor
func (h *Handler) EliminarDoctor(c *fiber.Ctx) error {
	if err := h.backend.EliminarDoctor(c.UserContext(), c.Params("id")); err != nil {
		return falloBackend(c, "F13", "Error al eliminar doctor", err)
	}

	data := fiber.Map{"message": "Doctor eliminado exitosamente"}
	h.recargarDoctores(c, data)
	return responder(c, fiber.StatusOK, "S13", data)
}

// recargarDoctores agrega el listado actualizado. Si falla, la escritura ya
// se hizo: se devuelve la lista vacía con una advertencia.
func (h *Handler) recargarDoctores(c *fiber.Ctx, data fiber.Map) {
	doctores, err := h.backend.ListarDoctores(c.UserContext())
	if err != nil {
		data["doctores"] = []models.Doctor{}
		data["advertencias"] = []string{"no se pudo recargar la lista de doctores"}
		return
	}
	data["doctores"] = doctores
}
