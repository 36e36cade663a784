package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lizet96/clinica-dental/config"
	"github.com/lizet96/clinica-dental/handlers"
	"github.com/lizet96/clinica-dental/middleware"
)

// maxBody es el tamaño máximo aceptado para el cuerpo de una petición
const maxBody = 1 << 20

// basicos devuelve la cadena base. El registro va antes de recover para que
// una petición que entra en pánico también quede en la bitácora.
func basicos(logging middleware.LoggingConfig) []fiber.Handler {
	return []fiber.Handler{
		middleware.RequestID(),
		middleware.LoggingMiddleware(logging),
		recover.New(),
	}
}

// SetupRoutes configura todas las rutas de la consola
func SetupRoutes(app *fiber.App, h *handlers.Handler, cfg *config.Config, logging middleware.LoggingConfig) {
	// Middleware global
	for _, m := range basicos(logging) {
		app.Use(m)
	}
	app.Use(middleware.SecurityHeaders())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept,X-Request-ID",
		ExposeHeaders: "Content-Disposition,X-Export-ID,X-Request-ID",
	}))

	// Ruta de salud del sistema
	app.Get("/health", h.Health)

	// Grupo de API
	api := app.Group("/api/v1",
		middleware.CreateRateLimiter(middleware.RateLimitConfig{
			Max:        cfg.RateLimitMax,
			Expiration: cfg.RateLimitWindow,
		}),
		middleware.BodySizeLimit(maxBody),
	)
	api.Get("/health", h.Health)

	// --- DOCTORES ---
	doctores := api.Group("/doctores")
	doctores.Get("/", h.ObtenerDoctores)
	doctores.Post("/", h.CrearDoctor)
	doctores.Put("/:id", h.ActualizarDoctor)
	doctores.Delete("/:id", h.EliminarDoctor)

	// --- SERVICIOS ---
	servicios := api.Group("/servicios")
	servicios.Get("/", h.ObtenerServicios)
	servicios.Post("/", h.CrearServicio)
	api.Get("/especialidades", h.ObtenerEspecialidades)

	// --- CITAS ---
	citas := api.Group("/citas")
	citas.Get("/", h.ObtenerCitas)
	citas.Post("/", h.CrearCita)
	citas.Get("/motivos-cancelacion", h.ObtenerMotivosCancelacion)
	citas.Put("/:id/atender", h.AtenderCita)
	citas.Put("/:id/cancelar", h.CancelarCita)
	citas.Put("/:id/estado", h.ActualizarEstadoCita)

	// --- PACIENTES ---
	pacientes := api.Group("/pacientes")
	pacientes.Get("/", h.ObtenerPacientes)
	pacientes.Post("/", h.CrearPaciente)
	pacientes.Get("/:id", h.ObtenerPaciente)
	pacientes.Put("/:id", h.ActualizarPaciente)
	pacientes.Delete("/:id", h.EliminarPaciente)

	// --- HORARIOS Y DISPONIBILIDAD ---
	api.Get("/disponibilidad", h.ObtenerDisponibilidad)
	api.Get("/horarios/generar", h.GenerarHorario)

	// --- AGENDA ---
	agenda := api.Group("/agenda")
	agenda.Get("/catalogos", h.ObtenerCatalogos)
	formularios := agenda.Group("/formularios")
	formularios.Post("/", h.NuevoFormulario)
	formularios.Get("/:id", h.ObtenerFormulario)
	formularios.Delete("/:id", h.CerrarFormulario)
	formularios.Post("/:id/eventos", h.AplicarEvento)
	formularios.Post("/:id/enviar", h.EnviarFormulario)
	formularios.Post("/:id/limpiar", h.LimpiarFormulario)

	// --- REPORTES ---
	reportes := api.Group("/reportes")
	reportes.Get("/", h.ObtenerReporte)
	reportes.Get("/exportar", middleware.CreateRateLimiter(middleware.ExportRateLimit), h.ExportarReporte)
	reportes.Get("/exportaciones", h.ObtenerExportaciones)
	reportes.Get("/exportaciones/:id", h.ObtenerExportacion)

	// --- LOGS ---
	logs := api.Group("/logs")
	logs.Get("/", h.ObtenerLogs)
	logs.Get("/estadisticas", h.ObtenerEstadisticasLogs)
	logs.Delete("/", h.LimpiarLogs)

	// --- REFERENCIAS ---
	api.Get("/paises", h.ObtenerPaises)
	api.Get("/paises/:codigo/ciudades", h.ObtenerCiudades)
	api.Get("/sucursales", h.ObtenerSucursales)
}
