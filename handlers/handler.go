package handlers

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lizet96/clinica-dental/agendamiento"
	"github.com/lizet96/clinica-dental/eventos"
	"github.com/lizet96/clinica-dental/gateway"
	"github.com/lizet96/clinica-dental/models"
)

// Backend son las operaciones del gateway que usa la consola
type Backend interface {
	gateway.FuenteAgenda
	gateway.FuentePacientes

	BuscarDoctor(ctx context.Context, id string) (*models.Doctor, error)
	CrearDoctor(ctx context.Context, req models.DoctorRequest) (*models.Doctor, error)
	ActualizarDoctor(ctx context.Context, id string, upd models.DoctorUpdate) (*models.Doctor, error)
	EliminarDoctor(ctx context.Context, id string) error

	CrearServicio(ctx context.Context, req models.ServicioRequest) (*models.Servicio, error)

	ListarCitas(ctx context.Context, filtros models.CitaFiltros) ([]models.Cita, error)
	CrearCita(ctx context.Context, req models.CitaRequest) (*models.Cita, error)
	ActualizarEstadoCita(ctx context.Context, id string, req models.EstadoCitaRequest) (*models.Cita, error)

	ObtenerPaciente(ctx context.Context, id string) (*models.Paciente, error)
	CrearPaciente(ctx context.Context, req models.PacienteRequest) (*models.Paciente, error)
	ActualizarPaciente(ctx context.Context, id string, req models.PacienteRequest) (*models.Paciente, error)
	EliminarPaciente(ctx context.Context, id string) error

	ListarCiudades(ctx context.Context, codigoPais string) ([]models.Ciudad, error)
	ListarSucursales(ctx context.Context) ([]models.Sucursal, error)
}

// Disponibilidades resuelve los horarios libres de un doctor
type Disponibilidades interface {
	Disponibilidad(ctx context.Context, doctor models.Doctor, fecha string) models.Disponibilidad
}

// Reportes genera el reporte del dashboard
type Reportes interface {
	Generar(ctx context.Context, filtros models.ReporteFiltros) (models.Reporte, error)
}

// Exportaciones es el archivo de reportes exportados
type Exportaciones interface {
	Guardar(ctx context.Context, exp *models.ReporteExportado) error
	Listar(ctx context.Context, limite int) ([]models.ReporteExportado, error)
	Obtener(ctx context.Context, id string) (*models.ReporteExportado, error)
}

// Bitacora es la bitácora de actividad guardada en base de datos
type Bitacora interface {
	Listar(ctx context.Context, filtros models.LogFiltros) ([]models.Log, int, error)
	Estadisticas(ctx context.Context, desde time.Duration) (models.LogEstadisticas, error)
	EliminarAntiguos(ctx context.Context, dias int) (int64, error)
}

// Deps agrupa las dependencias de los handlers. Exportaciones y Bitacora son
// nil cuando no hay base de datos.
type Deps struct {
	Backend        Backend
	Disponibilidad Disponibilidades
	Formularios    *agendamiento.Manager
	Reportes       Reportes
	Exportaciones  Exportaciones
	Bitacora       Bitacora
	Eventos        eventos.Publisher
	Logger         zerolog.Logger
	Version        string
}

// Handler atiende la API de la consola
type Handler struct {
	backend        Backend
	disponibilidad Disponibilidades
	formularios    *agendamiento.Manager
	reportes       Reportes
	exportaciones  Exportaciones
	bitacora       Bitacora
	eventos        eventos.Publisher
	logger         zerolog.Logger
	version        string
	ahora          func() time.Time
}

// New crea el handler
func New(d Deps) *Handler {
	if d.Eventos == nil {
		d.Eventos = eventos.NopPublisher{}
	}
	return &Handler{
		backend:        d.Backend,
		disponibilidad: d.Disponibilidad,
		formularios:    d.Formularios,
		reportes:       d.Reportes,
		exportaciones:  d.Exportaciones,
		bitacora:       d.Bitacora,
		eventos:        d.Eventos,
		logger:         d.Logger,
		version:        d.Version,
		ahora:          time.Now,
	}
}

// publicar envía el evento sin demorar la respuesta; un fallo sólo se registra
func (h *Handler) publicar(tipo string, cita models.Cita) {
	evento := eventos.NuevoEventoCita(tipo, cita, h.ahora())
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.eventos.Publicar(ctx, evento); err != nil {
			h.logger.Warn().Err(err).Str("cita_id", cita.ID).Str("tipo", tipo).Msg("no se pudo publicar el evento")
		}
	}()
}
