package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lizet96/clinica-dental/gateway"
	"github.com/lizet96/clinica-dental/models"
)

const mensajeConsentimiento = "Debe aceptar las políticas de privacidad"

// ObtenerPacientes devuelve la pantalla de pacientes: listado y países
func (h *Handler) ObtenerPacientes(c *fiber.Ctx) error {
	pantalla := gateway.CargarPacientes(c.UserContext(), h.backend)
	return responder(c, fiber.StatusOK, "S40", pantalla)
}

// ObtenerPaciente devuelve un paciente
func (h *Handler) ObtenerPaciente(c *fiber.Ctx) error {
	paciente, err := h.backend.ObtenerPaciente(c.UserContext(), c.Params("id"))
	if err != nil {
		return falloBackend(c, "F41", "Error al obtener paciente", err)
	}
	return responder(c, fiber.StatusOK, "S41", fiber.Map{"paciente": paciente})
}

// leerPaciente parsea y valida el formulario. Si ok es false la respuesta
// de error ya fue escrita.
func leerPaciente(c *fiber.Ctx, intCode string) (req models.PacienteRequest, ok bool, err error) {
	if err := c.BodyParser(&req); err != nil {
		return req, false, fallo(c, fiber.StatusBadRequest, intCode, "Datos inválidos")
	}
	// El consentimiento se verifica antes que cualquier otro campo
	if !req.AceptaPoliticas {
		return req, false, fallo(c, fiber.StatusBadRequest, intCode, mensajeConsentimiento)
	}
	if err := models.Validar(req); err != nil {
		return req, false, falloValidacion(c, intCode, err)
	}
	return req, true, nil
}

// CrearPaciente registra un paciente
func (h *Handler) CrearPaciente(c *fiber.Ctx) error {
	req, ok, err := leerPaciente(c, "F42")
	if !ok {
		return err
	}

	paciente, err := h.backend.CrearPaciente(c.UserContext(), req)
	if err != nil {
		return falloBackend(c, "F42", "Error al registrar paciente", err)
	}

	data := fiber.Map{"paciente": paciente}
	h.recargarPacientes(c, data)
	return responder(c, fiber.StatusCreated, "S42", data)
}

// ActualizarPaciente edita un paciente
func (h *Handler) ActualizarPaciente(c *fiber.Ctx) error {
	req, ok, err := leerPaciente(c, "F43")
	if !ok {
		return err
	}

	paciente, err := h.backend.ActualizarPaciente(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return falloBackend(c, "F43", "Error al actualizar paciente", err)
	}

	data := fiber.Map{"paciente": paciente}
	h.recargarPacientes(c, data)
	return responder(c, fiber.StatusOK, "S43", data)
}

// EliminarPaciente borra un paciente
func (h *Handler) EliminarPaciente(c *fiber.Ctx) error {
	if err := h.backend.EliminarPaciente(c.UserContext(), c.Params("id")); err != nil {
		return falloBackend(c, "F44", "Error al eliminar paciente", err)
	}

	data := fiber.Map{"message": "Paciente eliminado exitosamente"}
	h.recargarPacientes(c, data)
	return responder(c, fiber.StatusOK, "S44", data)
}

func (h *Handler) recargarPacientes(c *fiber.Ctx, data fiber.Map) {
	pacientes, err := h.backend.ListarPacientes(c.UserContext())
	if err != nil {
		data["pacientes"] = []models.Paciente{}
		data["advertencias"] = []string{"no se pudo recargar la lista de pacientes"}
		return
	}
	data["pacientes"] = pacientes
}
