package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lizet96/clinica-dental/database"
	"github.com/lizet96/clinica-dental/models"
)

// sinBaseDeDatos responde 503 cuando la consola corre sin Postgres
func sinBaseDeDatos(c *fiber.Ctx, intCode string) error {
	return fallo(c, fiber.StatusServiceUnavailable, intCode, "La bitácora y el archivo requieren base de datos")
}

// ObtenerLogs obtiene logs con filtros opcionales
func (h *Handler) ObtenerLogs(c *fiber.Ctx) error {
	if h.bitacora == nil {
		return sinBaseDeDatos(c, "F70")
	}

	var filtros models.LogFiltros
	if err := c.QueryParser(&filtros); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F70", "Parámetros inválidos")
	}
	if err := models.Validar(filtros); err != nil {
		return falloValidacion(c, "F70", err)
	}

	logs, total, err := h.bitacora.Listar(c.UserContext(), filtros)
	if err != nil {
		h.logger.Error().Err(err).Msg("error al obtener logs")
		return fallo(c, fiber.StatusInternalServerError, "F70", "Error al obtener logs")
	}
	if logs == nil {
		logs = []models.Log{}
	}

	page, limit := filtros.Page, filtros.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = database.LimitePorDefecto
	}
	if limit > database.LimiteMaximo {
		limit = database.LimiteMaximo
	}

	return responder(c, fiber.StatusOK, "S70", fiber.Map{
		"logs":  logs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// ObtenerEstadisticasLogs resume la bitácora de las últimas 24 horas
func (h *Handler) ObtenerEstadisticasLogs(c *fiber.Ctx) error {
	if h.bitacora == nil {
		return sinBaseDeDatos(c, "F71")
	}

	stats, err := h.bitacora.Estadisticas(c.UserContext(), 24*time.Hour)
	if err != nil {
		h.logger.Error().Err(err).Msg("error al obtener estadísticas de logs")
		return fallo(c, fiber.StatusInternalServerError, "F71", "Error al obtener estadísticas")
	}
	return responder(c, fiber.StatusOK, "S71", fiber.Map{
		"estadisticas": stats,
		"period":       "24 hours",
	})
}

// LimpiarLogs elimina logs antiguos
func (h *Handler) LimpiarLogs(c *fiber.Ctx) error {
	if h.bitacora == nil {
		return sinBaseDeDatos(c, "F72")
	}

	// Parámetro de días (por defecto 30 días)
	dias, _ := strconv.Atoi(c.Query("dias", "30"))
	if dias < 1 {
		dias = 30
	}

	eliminados, err := h.bitacora.EliminarAntiguos(c.UserContext(), dias)
	if err != nil {
		h.logger.Error().Err(err).Int("dias", dias).Msg("error al limpiar logs")
		return fallo(c, fiber.StatusInternalServerError, "F72", "Error al limpiar logs")
	}

	return responder(c, fiber.StatusOK, "S72", fiber.Map{
		"message":      "Logs limpiados exitosamente",
		"rows_deleted": eliminados,
		"days_deleted": dias,
	})
}
