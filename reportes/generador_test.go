package reportes

import (
	"context"
	"errors"
	"testing"

	"github.com/lizet96/clinica-dental/config"
	"github.com/lizet96/clinica-dental/models"
)

type datosFake struct {
	citas     []models.Cita
	servicios []models.Servicio
	err       error
}

func (d datosFake) ListarCitas(context.Context, models.CitaFiltros) ([]models.Cita, error) {
	return d.citas, d.err
}

func (d datosFake) ListarServicios(context.Context) ([]models.Servicio, error) {
	return d.servicios, nil
}

type remotoFake struct {
	reporte *models.Reporte
	err     error
	filtros models.ReporteFiltros
}

func (r *remotoFake) ObtenerReporte(_ context.Context, f models.ReporteFiltros) (*models.Reporte, error) {
	r.filtros = f
	return r.reporte, r.err
}

func TestGenerador_Local(t *testing.T) {
	datos := datosFake{
		citas: []models.Cita{
			cita("1", "S1", "2025-05-01", "09:00", models.EstadoCompletada),
			cita("2", "S1", "2025-05-01", "10:00", models.EstadoCompletada),
		},
		servicios: catalogo,
	}
	g := NewGenerador(config.FuenteReporteLocal, datos, &remotoFake{})

	r, err := g.Generar(context.Background(), models.ReporteFiltros{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Citas.Atendidas != 2 || r.Servicios[0].Ingresos != 200 {
		t.Errorf("unexpected report: %+v", r)
	}
}

func TestGenerador_LocalError(t *testing.T) {
	g := NewGenerador(config.FuenteReporteLocal, datosFake{err: errors.New("timeout")}, &remotoFake{})
	if _, err := g.Generar(context.Background(), models.ReporteFiltros{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestGenerador_Backend(t *testing.T) {
	remoto := &remotoFake{reporte: &models.Reporte{Citas: models.EstadisticasCitas{Total: 4}}}
	g := NewGenerador(config.FuenteReporteBackend, datosFake{}, remoto)

	filtros := models.ReporteFiltros{PublicoObjetivo: "niños"}
	r, err := g.Generar(context.Background(), filtros)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remoto.filtros != filtros {
		t.Errorf("filters not forwarded: %+v", remoto.filtros)
	}
	if r.Citas.Total != 4 || r.Servicios == nil || r.Mensuales == nil {
		t.Errorf("unexpected report: %+v", r)
	}
}
