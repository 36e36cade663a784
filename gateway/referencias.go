package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/lizet96/clinica-dental/models"
)

// ListarPaises devuelve el catálogo de países. No hay catálogo embebido de
// respaldo: si el backend falla, el error se propaga.
func (c *Client) ListarPaises(ctx context.Context) ([]models.Pais, error) {
	var paises []models.Pais
	if err := c.hacer(ctx, "listar países", http.MethodGet, "/countries", nil, nil, &paises); err != nil {
		return nil, err
	}
	if paises == nil {
		paises = []models.Pais{}
	}
	return paises, nil
}

// ListarCiudades devuelve las ciudades de un país
func (c *Client) ListarCiudades(ctx context.Context, codigoPais string) ([]models.Ciudad, error) {
	var ciudades []models.Ciudad
	path := "/countries/" + url.PathEscape(codigoPais) + "/cities"
	if err := c.hacer(ctx, "listar ciudades", http.MethodGet, path, nil, nil, &ciudades); err != nil {
		return nil, err
	}
	if ciudades == nil {
		ciudades = []models.Ciudad{}
	}
	return ciudades, nil
}

// ListarSucursales devuelve las sedes de la clínica
func (c *Client) ListarSucursales(ctx context.Context) ([]models.Sucursal, error) {
	var sucursales []models.Sucursal
	if err := c.hacer(ctx, "listar sucursales", http.MethodGet, "/branches", nil, nil, &sucursales); err != nil {
		return nil, err
	}
	if sucursales == nil {
		sucursales = []models.Sucursal{}
	}
	return sucursales, nil
}

// ObtenerReporte delega la agregación de reportes en el backend
func (c *Client) ObtenerReporte(ctx context.Context, filtros models.ReporteFiltros) (*models.Reporte, error) {
	query := url.Values{}
	for clave, valor := range map[string]string{
		"sucursal":        filtros.Sucursal,
		"tipoServicio":    filtros.TipoServicio,
		"publicoObjetivo": filtros.PublicoObjetivo,
		"fechaInicio":     filtros.FechaInicio,
		"fechaFin":        filtros.FechaFin,
	} {
		if valor != "" {
			query.Set(clave, valor)
		}
	}

	var reporte models.Reporte
	if err := c.hacer(ctx, "obtener reporte", http.MethodGet, "/reports", query, nil, &reporte); err != nil {
		return nil, err
	}
	return &reporte, nil
}
