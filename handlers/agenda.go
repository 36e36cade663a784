package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lizet96/clinica-dental/agendamiento"
	"github.com/lizet96/clinica-dental/eventos"
	"github.com/lizet96/clinica-dental/gateway"
	"github.com/lizet96/clinica-dental/models"
)

// formularioVista es el formulario tal como lo dibuja la consola
type formularioVista struct {
	ID             string              `json:"id"`
	Estado         agendamiento.Estado `json:"estado"`
	PuedeEnviar    bool                `json:"puedeEnviar"`
	MostrarHoras   bool                `json:"mostrarHoras"`
	NotasRestantes int                 `json:"notasRestantes"`
}

func vista(id string, e agendamiento.Estado) formularioVista {
	return formularioVista{
		ID:             id,
		Estado:         e,
		PuedeEnviar:    e.PuedeEnviar(),
		MostrarHoras:   e.MostrarHoras(),
		NotasRestantes: e.NotasRestantes(),
	}
}

// falloFormulario traduce los errores del manager de formularios
func falloFormulario(c *fiber.Ctx, intCode string, err error) error {
	var verr *models.ErrorValidacion
	switch {
	case errors.Is(err, agendamiento.ErrFormularioNoEncontrado):
		return fallo(c, fiber.StatusNotFound, intCode, "Formulario no encontrado")
	case errors.As(err, &verr):
		return falloValidacion(c, intCode, err)
	case errors.Is(err, agendamiento.ErrEventoDesconocido),
		errors.Is(err, agendamiento.ErrHoraSinSeleccion),
		errors.Is(err, agendamiento.ErrHoraNoDisponible),
		errors.Is(err, agendamiento.ErrIncompleto):
		return fallo(c, fiber.StatusBadRequest, intCode, err.Error())
	}
	return falloBackend(c, intCode, "Error al agendar la cita", err)
}

// ObtenerCatalogos carga doctores y servicios para el formulario de agenda
func (h *Handler) ObtenerCatalogos(c *fiber.Ctx) error {
	agenda := gateway.CargarAgenda(c.UserContext(), h.backend)
	return responder(c, fiber.StatusOK, "S60", agenda)
}

// NuevoFormulario abre un formulario vacío
func (h *Handler) NuevoFormulario(c *fiber.Ctx) error {
	id, estado := h.formularios.Nuevo()
	return responder(c, fiber.StatusCreated, "S61", vista(id, estado))
}

// ObtenerFormulario devuelve el estado actual de un formulario
func (h *Handler) ObtenerFormulario(c *fiber.Ctx) error {
	id := c.Params("id")
	estado, err := h.formularios.Obtener(id)
	if err != nil {
		return falloFormulario(c, "F62", err)
	}
	return responder(c, fiber.StatusOK, "S62", vista(id, estado))
}

// AplicarEvento aplica un cambio del usuario. Al elegir doctor y fecha la
// respuesta ya trae los horarios disponibles.
func (h *Handler) AplicarEvento(c *fiber.Ctx) error {
	id := c.Params("id")
	var ev agendamiento.Evento
	if err := c.BodyParser(&ev); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F63", "Datos inválidos")
	}
	if err := models.Validar(ev); err != nil {
		return falloValidacion(c, "F63", err)
	}

	estado, err := h.formularios.Aplicar(c.UserContext(), id, ev)
	if err != nil {
		return falloFormulario(c, "F63", err)
	}
	return responder(c, fiber.StatusOK, "S63", vista(id, estado))
}

// EnviarFormulario agenda la cita. Si el backend la rechaza el formulario
// conserva lo que el usuario había cargado.
func (h *Handler) EnviarFormulario(c *fiber.Ctx) error {
	id := c.Params("id")
	cita, estado, err := h.formularios.Enviar(c.UserContext(), id)
	if err != nil {
		return falloFormulario(c, "F64", err)
	}
	h.publicar(eventos.CitaAgendada, *cita)

	return responder(c, fiber.StatusCreated, "S64", fiber.Map{
		"message":    "Cita agendada exitosamente",
		"cita":       cita,
		"formulario": vista(id, estado),
	})
}

// LimpiarFormulario vacía el formulario
func (h *Handler) LimpiarFormulario(c *fiber.Ctx) error {
	id := c.Params("id")
	estado, err := h.formularios.Limpiar(id)
	if err != nil {
		return falloFormulario(c, "F65", err)
	}
	return responder(c, fiber.StatusOK, "S65", vista(id, estado))
}

// CerrarFormulario descarta el formulario
func (h *Handler) CerrarFormulario(c *fiber.Ctx) error {
	if err := h.formularios.Eliminar(c.Params("id")); err != nil {
		return falloFormulario(c, "F66", err)
	}
	return responder(c, fiber.StatusOK, "S66", fiber.Map{"message": "Formulario cerrado"})
}
