package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/lizet96/clinica-dental/database"
	"github.com/lizet96/clinica-dental/models"
	"github.com/lizet96/clinica-dental/reportes"
)

func filtrosReporte(c *fiber.Ctx) (models.ReporteFiltros, error) {
	var filtros models.ReporteFiltros
	if err := c.QueryParser(&filtros); err != nil {
		return filtros, err
	}
	return filtros, models.Validar(filtros)
}

// ObtenerReporte genera las estadísticas del dashboard con los filtros dados
func (h *Handler) ObtenerReporte(c *fiber.Ctx) error {
	filtros, err := filtrosReporte(c)
	if err != nil {
		return falloValidacion(c, "F80", err)
	}

	reporte, err := h.reportes.Generar(c.UserContext(), filtros)
	if err != nil {
		return falloBackend(c, "F80", "Error al generar el reporte", err)
	}
	return responder(c, fiber.StatusOK, "S80", fiber.Map{
		"filtros":      filtros,
		"estadisticas": reporte,
	})
}

// ExportarReporte descarga el reporte como JSON y lo archiva si hay base de datos
func (h *Handler) ExportarReporte(c *fiber.Ctx) error {
	filtros, err := filtrosReporte(c)
	if err != nil {
		return falloValidacion(c, "F81", err)
	}

	reporte, err := h.reportes.Generar(c.UserContext(), filtros)
	if err != nil {
		return falloBackend(c, "F81", "Error al generar el reporte", err)
	}

	snapshot, contenido, err := reportes.Exportar(reporte, filtros, h.ahora())
	if err != nil {
		h.logger.Error().Err(err).Msg("error al serializar el reporte")
		return fallo(c, fiber.StatusInternalServerError, "F81", "Error al exportar el reporte")
	}

	if h.exportaciones != nil {
		exp := reportes.NuevaExportacion(snapshot, contenido, models.OrigenManual)
		// Un fallo del archivo no impide la descarga
		if err := h.exportaciones.Guardar(c.UserContext(), &exp); err != nil {
			h.logger.Warn().Err(err).Msg("no se pudo archivar el reporte exportado")
		} else {
			c.Set("X-Export-ID", exp.ID)
		}
	}

	c.Attachment(reportes.NombreArchivo(snapshot.FechaGeneracion))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(fiber.StatusOK).Send(contenido)
}

// ObtenerExportaciones lista los reportes archivados, sin su contenido
func (h *Handler) ObtenerExportaciones(c *fiber.Ctx) error {
	if h.exportaciones == nil {
		return sinBaseDeDatos(c, "F82")
	}

	limite, _ := strconv.Atoi(c.Query("limit", "20"))
	exportaciones, err := h.exportaciones.Listar(c.UserContext(), limite)
	if err != nil {
		h.logger.Error().Err(err).Msg("error al listar exportaciones")
		return fallo(c, fiber.StatusInternalServerError, "F82", "Error al obtener exportaciones")
	}
	if exportaciones == nil {
		exportaciones = []models.ReporteExportado{}
	}
	return responder(c, fiber.StatusOK, "S82", fiber.Map{"exportaciones": exportaciones})
}

// ObtenerExportacion devuelve un reporte archivado. Con ?descargar=true se
// entrega como archivo, igual que al exportarlo.
func (h *Handler) ObtenerExportacion(c *fiber.Ctx) error {
	if h.exportaciones == nil {
		return sinBaseDeDatos(c, "F83")
	}

	exp, err := h.exportaciones.Obtener(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNoEncontrado) {
			return fallo(c, fiber.StatusNotFound, "F83", "Exportación no encontrada")
		}
		h.logger.Error().Err(err).Msg("error al obtener exportación")
		return fallo(c, fiber.StatusInternalServerError, "F83", "Error al obtener la exportación")
	}

	if c.QueryBool("descargar") {
		c.Attachment(exp.NombreArchivo)
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.Status(fiber.StatusOK).Send(exp.Contenido)
	}
	return responder(c, fiber.StatusOK, "S83", fiber.Map{"exportacion": exp})
}
