package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/lizet96/clinica-dental/agendamiento"
	"github.com/lizet96/clinica-dental/config"
	"github.com/lizet96/clinica-dental/database"
	"github.com/lizet96/clinica-dental/eventos"
	"github.com/lizet96/clinica-dental/gateway"
	"github.com/lizet96/clinica-dental/handlers"
	"github.com/lizet96/clinica-dental/horarios"
	"github.com/lizet96/clinica-dental/middleware"
	"github.com/lizet96/clinica-dental/reportes"
	"github.com/lizet96/clinica-dental/routes"
	"github.com/lizet96/clinica-dental/tareas"
)

func runServer(cfg *config.Config, logger zerolog.Logger) error {
	ctx := context.Background()

	deps := handlers.Deps{Logger: logger, Version: version}
	logging := middleware.LoggingConfig{Logger: logger, Environment: cfg.Environment}

	// Base de datos opcional: bitácora y archivo de reportes
	var exportaciones *database.ExportRepository
	var bitacora *database.LogRepository
	if cfg.HasDatabase() {
		pool, err := database.Connect(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("no se pudo conectar a la base de datos")
		}
		defer pool.Close()

		n, err := database.NewMigrator(pool).Up(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("migraciones fallidas")
		}
		logger.Info().Int("aplicadas", n).Msg("conexión a la base de datos establecida")

		exportaciones = database.NewExportRepository(pool)
		bitacora = database.NewLogRepository(pool)
		deps.Exportaciones = exportaciones
		deps.Bitacora = bitacora
		logging.Guardador = bitacora
	} else {
		logger.Warn().Msg("DATABASE_URL vacío: bitácora y archivo de reportes deshabilitados")
	}

	// Eventos de citas
	var publisher eventos.Publisher = eventos.NopPublisher{}
	if cfg.HasKafka() {
		publisher = eventos.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		logger.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("publicación de eventos habilitada")
	}
	defer publisher.Close()
	deps.Eventos = publisher

	// Backend de la clínica
	gw := gateway.New(cfg, logger)

	var fuente horarios.FuenteOcupacion = horarios.FuenteBackend{API: gw}
	if cfg.AvailabilitySource == config.FuenteDisponibilidadCitas {
		fuente = horarios.FuenteCitas{API: gw}
	}
	resolver := horarios.NewResolver(fuente, logger)
	formularios := agendamiento.NewManager(gw, gw, resolver, logger)
	generador := reportes.NewGenerador(cfg.ReportSource, gw, gw)

	deps.Backend = gw
	deps.Disponibilidad = resolver
	deps.Formularios = formularios
	deps.Reportes = generador

	// Trabajos programados
	programador := tareas.New(logger)
	if err := programador.ProgramarPurga(cfg.FormTTL, formularios); err != nil {
		return err
	}
	if bitacora != nil {
		if err := programador.ProgramarRetencion(bitacora, tareas.DiasRetencionLogs); err != nil {
			return err
		}
	}
	if exportaciones != nil && cfg.ReportSnapshotCron != "" {
		if err := programador.ProgramarSnapshot(cfg.ReportSnapshotCron, generador, exportaciones); err != nil {
			return err
		}
	}
	programador.Start()

	// Crear instancia de Fiber con configuración
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
		AppName:               "Clínica Dental API v" + version,
		DisableStartupMessage: !cfg.IsDev(),
	})

	// Configurar rutas
	routes.SetupRoutes(app, handlers.New(deps), cfg, logging)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{
			"error":   "Ruta no encontrada",
			"message": "La ruta solicitada no existe en este servidor",
			"path":    c.Path(),
			"method":  c.Method(),
		})
	})

	go func() {
		addr := ":" + cfg.Port
		logger.Info().
			Str("addr", addr).
			Str("backend", cfg.APIBaseURL).
			Str("disponibilidad", cfg.AvailabilitySource).
			Str("reportes", cfg.ReportSource).
			Int("trabajos", programador.Trabajos()).
			Msg("servidor de la consola iniciado")
		if err := app.Listen(addr); err != nil {
			logger.Fatal().Err(err).Msg("error del servidor")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("apagando el servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("apagado del servidor incompleto")
	}
	programador.Stop(shutdownCtx)
	logger.Info().Msg("servidor detenido")
	return nil
}
