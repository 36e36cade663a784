package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lizet96/clinica-dental/especialidades"
	"github.com/lizet96/clinica-dental/models"
)

// ObtenerServicios lista los servicios con su especialidad
func (h *Handler) ObtenerServicios(c *fiber.Ctx) error {
	servicios, err := h.backend.ListarServicios(c.UserContext())
	if err != nil {
		return falloBackend(c, "F20", "Error al obtener servicios", err)
	}
	return responder(c, fiber.StatusOK, "S20", fiber.Map{"servicios": servicios})
}

// CrearServicio registra un servicio; duración positiva y precio no negativo
func (h *Handler) CrearServicio(c *fiber.Ctx) error {
	var req models.ServicioRequest
	if err := c.BodyParser(&req); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F21", "Datos inválidos")
	}
	if err := models.Validar(req); err != nil {
		return falloValidacion(c, "F21", err)
	}

	servicio, err := h.backend.CrearServicio(c.UserContext(), req)
	if err != nil {
		return falloBackend(c, "F21", "Error al crear servicio", err)
	}

	data := fiber.Map{"servicio": servicio}
	servicios, err := h.backend.ListarServicios(c.UserContext())
	if err != nil {
		data["servicios"] = []models.Servicio{}
		data["advertencias"] = []string{"no se pudo recargar la lista de servicios"}
	} else {
		data["servicios"] = servicios
	}
	return responder(c, fiber.StatusCreated, "S21", data)
}

// ObtenerEspecialidades lista las especialidades que asigna la clasificación
func (h *Handler) ObtenerEspecialidades(c *fiber.Ctx) error {
	return responder(c, fiber.StatusOK, "S22", fiber.Map{"especialidades": especialidades.Todas()})
}
