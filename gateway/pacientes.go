package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/lizet96/clinica-dental/models"
)

// ListarPacientes devuelve todos los pacientes
func (c *Client) ListarPacientes(ctx context.Context) ([]models.Paciente, error) {
	var pacientes []models.Paciente
	if err := c.hacer(ctx, "listar pacientes", http.MethodGet, "/patients", nil, nil, &pacientes); err != nil {
		return nil, err
	}
	if pacientes == nil {
		pacientes = []models.Paciente{}
	}
	return pacientes, nil
}

// ObtenerPaciente devuelve un paciente por id
func (c *Client) ObtenerPaciente(ctx context.Context, id string) (*models.Paciente, error) {
	var paciente models.Paciente
	if err := c.hacer(ctx, "obtener paciente", http.MethodGet, "/patients/"+url.PathEscape(id), nil, nil, &paciente); err != nil {
		return nil, err
	}
	return &paciente, nil
}

// CrearPaciente registra un paciente
func (c *Client) CrearPaciente(ctx context.Context, req models.PacienteRequest) (*models.Paciente, error) {
	var paciente models.Paciente
	if err := c.hacer(ctx, "crear paciente", http.MethodPost, "/patients", nil, req, &paciente); err != nil {
		return nil, err
	}
	return &paciente, nil
}

// ActualizarPaciente reemplaza los datos de un paciente
func (c *Client) ActualizarPaciente(ctx context.Context, id string, req models.PacienteRequest) (*models.Paciente, error) {
	var paciente models.Paciente
	if err := c.hacer(ctx, "actualizar paciente", http.MethodPut, "/patients/"+url.PathEscape(id), nil, req, &paciente); err != nil {
		return nil, err
	}
	return &paciente, nil
}

// EliminarPaciente borra un paciente
func (c *Client) EliminarPaciente(ctx context.Context, id string) error {
	return c.hacer(ctx, "eliminar paciente", http.MethodDelete, "/patients/"+url.PathEscape(id), nil, nil, nil)
}
