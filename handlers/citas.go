package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lizet96/clinica-dental/eventos"
	"github.com/lizet96/clinica-dental/models"
)

func filtrosCita(c *fiber.Ctx) (models.CitaFiltros, error) {
	var filtros models.CitaFiltros
	if err := c.QueryParser(&filtros); err != nil {
		return filtros, err
	}
	return filtros, models.Validar(filtros)
}

// ObtenerCitas lista las citas, opcionalmente por fecha y doctor
func (h *Handler) ObtenerCitas(c *fiber.Ctx) error {
	filtros, err := filtrosCita(c)
	if err != nil {
		return falloValidacion(c, "F30", err)
	}
	citas, err := h.backend.ListarCitas(c.UserContext(), filtros)
	if err != nil {
		return falloBackend(c, "F30", "Error al obtener citas", err)
	}
	return responder(c, fiber.StatusOK, "S30", fiber.Map{"citas": citas})
}

// CrearCita agenda una cita directamente, sin pasar por un formulario
func (h *Handler) CrearCita(c *fiber.Ctx) error {
	var req models.CitaRequest
	if err := c.BodyParser(&req); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F31", "Datos inválidos")
	}
	if err := models.Validar(req); err != nil {
		return falloValidacion(c, "F31", err)
	}

	cita, err := h.backend.CrearCita(c.UserContext(), req)
	if err != nil {
		return falloBackend(c, "F31", "Error al agendar la cita", err)
	}
	h.publicar(eventos.CitaAgendada, *cita)

	data := fiber.Map{"cita": cita}
	h.recargarCitas(c, models.CitaFiltros{}, data)
	return responder(c, fiber.StatusCreated, "S31", data)
}

// AtenderCita marca la cita como completada
func (h *Handler) AtenderCita(c *fiber.Ctx) error {
	return h.cambiarEstado(c, models.EstadoCitaRequest{Estado: models.EstadoCompletada})
}

// CancelarCita cancela la cita con un motivo opcional
func (h *Handler) CancelarCita(c *fiber.Ctx) error {
	var body struct {
		Motivo string `json:"motivo"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return fallo(c, fiber.StatusBadRequest, "F32", "Datos inválidos")
		}
	}
	return h.cambiarEstado(c, models.EstadoCitaRequest{Estado: models.EstadoCancelada, Motivo: body.Motivo})
}

// ActualizarEstadoCita aplica un estado explícito
func (h *Handler) ActualizarEstadoCita(c *fiber.Ctx) error {
	var req models.EstadoCitaRequest
	if err := c.BodyParser(&req); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F32", "Datos inválidos")
	}
	return h.cambiarEstado(c, req)
}

// cambiarEstado envía el cambio y responde con el listado recargado con los
// mismos filtros que la pantalla tenía aplicados.
func (h *Handler) cambiarEstado(c *fiber.Ctx, req models.EstadoCitaRequest) error {
	if err := models.Validar(req); err != nil {
		return falloValidacion(c, "F32", err)
	}
	filtros, err := filtrosCita(c)
	if err != nil {
		return falloValidacion(c, "F32", err)
	}

	cita, err := h.backend.ActualizarEstadoCita(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return falloBackend(c, "F32", "Error al actualizar el estado de la cita", err)
	}
	if cita.MotivoCancelacion == "" && req.Estado == models.EstadoCancelada {
		cita.MotivoCancelacion = req.Motivo
	}
	h.publicar(eventos.CitaEstado, *cita)

	data := fiber.Map{"cita": cita}
	h.recargarCitas(c, filtros, data)
	return responder(c, fiber.StatusOK, "S32", data)
}

// ObtenerMotivosCancelacion lista los motivos que ofrece el modal de cancelación
func (h *Handler) ObtenerMotivosCancelacion(c *fiber.Ctx) error {
	return responder(c, fiber.StatusOK, "S33", fiber.Map{"motivos": models.MotivosCancelacion})
}

func (h *Handler) recargarCitas(c *fiber.Ctx, filtros models.CitaFiltros, data fiber.Map) {
	citas, err := h.backend.ListarCitas(c.UserContext(), filtros)
	if err != nil {
		data["citas"] = []models.Cita{}
		data["advertencias"] = []string{"no se pudo recargar la lista de citas"}
		return
	}
	data["citas"] = citas
}
