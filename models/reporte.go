package models

import (
	"encoding/json"
	"time"
)

// Público objetivo admitido por el filtro de reportes
const (
	PublicoAdultos = "adultos"
	PublicoNinos   = "niños"
)

// SucursalPrincipal es la única sede a la que pertenecen las citas
const SucursalPrincipal = "principal"

// ReporteFiltros representa los filtros del dashboard de reportes
type ReporteFiltros struct {
	Sucursal        string `json:"sucursal" query:"sucursal"`
	TipoServicio    string `json:"tipoServicio" query:"tipoServicio"`
	PublicoObjetivo string `json:"publicoObjetivo" query:"publicoObjetivo" validate:"omitempty,oneof=adultos niños"`
	FechaInicio     string `json:"fechaInicio" query:"fechaInicio" validate:"omitempty,fecha"`
	FechaFin        string `json:"fechaFin" query:"fechaFin" validate:"omitempty,fecha"`
}

// EstadisticasCitas resume las citas atendidas y canceladas
type EstadisticasCitas struct {
	Atendidas           int `json:"atendidas"`
	Canceladas          int `json:"canceladas"`
	Total               int `json:"total"`
	PorcentajeAtendidas int `json:"porcentajeAtendidas"`
}

// EstadisticasServicio agrupa las citas atendidas de un servicio
type EstadisticasServicio struct {
	Servicio        string  `json:"servicio"`
	Especializacion string  `json:"especializacion"`
	Cantidad        int     `json:"cantidad"`
	Ingresos        float64 `json:"ingresos"`
}

// EstadisticasMensuales agrupa las citas de un mes calendario
type EstadisticasMensuales struct {
	Clave      string  `json:"clave"`
	Mes        string  `json:"mes"`
	Atendidas  int     `json:"atendidas"`
	Canceladas int     `json:"canceladas"`
	Ingresos   float64 `json:"ingresos"`
}

// Reporte es el resultado de agregar las citas con un conjunto de filtros
type Reporte struct {
	Citas     EstadisticasCitas       `json:"citas"`
	Servicios []EstadisticasServicio  `json:"servicios"`
	Mensuales []EstadisticasMensuales `json:"mensuales"`
}

// ReporteSnapshot es el documento JSON que se descarga al exportar
type ReporteSnapshot struct {
	Filtros         ReporteFiltros `json:"filtros"`
	Estadisticas    Reporte        `json:"estadisticas"`
	FechaGeneracion time.Time      `json:"fechaGeneracion"`
}

// ReporteExportado representa la tabla report_exports en la base de datos
type ReporteExportado struct {
	ID              string          `json:"id" db:"id"`
	NombreArchivo   string          `json:"nombre_archivo" db:"nombre_archivo"`
	Origen          string          `json:"origen" db:"origen"`
	Filtros         ReporteFiltros  `json:"filtros" db:"filtros"`
	Contenido       json.RawMessage `json:"contenido,omitempty" db:"contenido"`
	FechaGeneracion time.Time       `json:"fecha_generacion" db:"fecha_generacion"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// Orígenes de una exportación archivada
const (
	OrigenManual     = "manual"
	OrigenProgramado = "programado"
)
