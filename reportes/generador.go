package reportes

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/lizet96/clinica-dental/config"
	"github.com/lizet96/clinica-dental/models"
)

// Datos son los listados del backend que necesita la agregación local
type Datos interface {
	ListarCitas(ctx context.Context, filtros models.CitaFiltros) ([]models.Cita, error)
	ListarServicios(ctx context.Context) ([]models.Servicio, error)
}

// Remoto es el endpoint de reportes del backend
type Remoto interface {
	ObtenerReporte(ctx context.Context, filtros models.ReporteFiltros) (*models.Reporte, error)
}

// Generador obtiene el reporte agregando localmente o delegando en el backend
type Generador struct {
	fuente string
	datos  Datos
	remoto Remoto
}

// NewGenerador crea un generador para la fuente configurada (local o backend)
func NewGenerador(fuente string, datos Datos, remoto Remoto) *Generador {
	return &Generador{fuente: fuente, datos: datos, remoto: remoto}
}

// Generar devuelve el reporte para los filtros. Ambas fuentes entregan la
// misma forma, con listas vacías en lugar de nulas.
func (g *Generador) Generar(ctx context.Context, filtros models.ReporteFiltros) (models.Reporte, error) {
	if g.fuente == config.FuenteReporteBackend {
		r, err := g.remoto.ObtenerReporte(ctx, filtros)
		if err != nil {
			return models.Reporte{}, fmt.Errorf("reporte remoto: %w", err)
		}
		if r == nil {
			r = &models.Reporte{}
		}
		return normalizar(*r), nil
	}

	var (
		citas     []models.Cita
		servicios []models.Servicio
	)
	g2, gctx := errgroup.WithContext(ctx)
	g2.Go(func() error {
		var err error
		citas, err = g.datos.ListarCitas(gctx, models.CitaFiltros{})
		if err != nil {
			return fmt.Errorf("listar citas: %w", err)
		}
		return nil
	})
	g2.Go(func() error {
		var err error
		servicios, err = g.datos.ListarServicios(gctx)
		if err != nil {
			return fmt.Errorf("listar servicios: %w", err)
		}
		return nil
	})
	if err := g2.Wait(); err != nil {
		return models.Reporte{}, err
	}
	return Calcular(citas, servicios, filtros), nil
}

func normalizar(r models.Reporte) models.Reporte {
	if r.Servicios == nil {
		r.Servicios = []models.EstadisticasServicio{}
	}
	if r.Mensuales == nil {
		r.Mensuales = []models.EstadisticasMensuales{}
	}
	return r
}
