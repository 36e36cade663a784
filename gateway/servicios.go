package gateway

import (
	"context"
	"net/http"

	"github.com/lizet96/clinica-dental/especialidades"
	"github.com/lizet96/clinica-dental/models"
)

type servicioAlta struct {
	models.ServicioRequest
	Especialidad string `json:"especialidad"`
	Type         string `json:"type"`
	Activo       bool   `json:"activo"`
}

// ListarServicios devuelve los servicios, completando la especialidad cuando
// el backend no la informa.
func (c *Client) ListarServicios(ctx context.Context) ([]models.Servicio, error) {
	var servicios []models.Servicio
	if err := c.hacer(ctx, "listar servicios", http.MethodGet, "/services", nil, nil, &servicios); err != nil {
		return nil, err
	}
	if servicios == nil {
		servicios = []models.Servicio{}
	}
	for i := range servicios {
		if servicios[i].Especialidad == "" {
			servicios[i].Especialidad = especialidades.Clasificar(servicios[i].Nombre)
		}
	}
	return servicios, nil
}

// CrearServicio registra un servicio con su especialidad derivada del nombre
func (c *Client) CrearServicio(ctx context.Context, req models.ServicioRequest) (*models.Servicio, error) {
	alta := servicioAlta{
		ServicioRequest: req,
		Especialidad:    especialidades.Clasificar(req.Nombre),
		Type:            "servicio",
		Activo:          true,
	}

	var servicio models.Servicio
	if err := c.hacer(ctx, "crear servicio", http.MethodPost, "/services", nil, alta, &servicio); err != nil {
		return nil, err
	}
	if servicio.Especialidad == "" {
		servicio.Especialidad = alta.Especialidad
	}
	return &servicio, nil
}
