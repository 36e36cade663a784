package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/lizet96/clinica-dental/models"
)

// ListarCitas devuelve las citas, opcionalmente filtradas por fecha y doctor
func (c *Client) ListarCitas(ctx context.Context, filtros models.CitaFiltros) ([]models.Cita, error) {
	query := url.Values{}
	if filtros.Fecha != "" {
		query.Set("fecha", filtros.Fecha)
	}
	if filtros.DoctorID != "" {
		query.Set("doctorId", filtros.DoctorID)
	}

	var citas []models.Cita
	if err := c.hacer(ctx, "listar citas", http.MethodGet, "/appointments", query, nil, &citas); err != nil {
		return nil, err
	}
	if citas == nil {
		citas = []models.Cita{}
	}
	return citas, nil
}

// CrearCita agenda una cita. La unicidad de doctor, fecha y hora la decide el backend.
func (c *Client) CrearCita(ctx context.Context, req models.CitaRequest) (*models.Cita, error) {
	var cita models.Cita
	if err := c.hacer(ctx, "crear cita", http.MethodPost, "/appointments", nil, req, &cita); err != nil {
		return nil, err
	}
	return &cita, nil
}

// ActualizarEstadoCita cambia el estado de una cita (atender, cancelar con motivo)
func (c *Client) ActualizarEstadoCita(ctx context.Context, id string, req models.EstadoCitaRequest) (*models.Cita, error) {
	var cita models.Cita
	path := "/appointments/" + url.PathEscape(id) + "/status"
	if err := c.hacer(ctx, "actualizar estado de cita", http.MethodPut, path, nil, req, &cita); err != nil {
		return nil, err
	}
	return &cita, nil
}

// ObtenerDisponibilidad consulta la ocupación calculada por el backend
func (c *Client) ObtenerDisponibilidad(ctx context.Context, doctorID, fecha string) (*models.Disponibilidad, error) {
	query := url.Values{}
	query.Set("doctorId", doctorID)
	query.Set("fecha", fecha)

	var d models.Disponibilidad
	if err := c.hacer(ctx, "obtener disponibilidad", http.MethodGet, "/availability", query, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
