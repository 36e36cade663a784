// Package tareas agenda los trabajos periódicos del servicio: la foto diaria
// de reportes, la purga de formularios abandonados y la retención de la bitácora.
package tareas

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/lizet96/clinica-dental/models"
	"github.com/lizet96/clinica-dental/reportes"
)

// Tiempos por defecto de los trabajos
const (
	CadaPurga         = "@every 15m"
	CronRetencion     = "30 3 * * *"
	DiasRetencionLogs = 90
	timeoutTrabajo    = 2 * time.Minute
)

// Reportes genera el reporte para unos filtros
type Reportes interface {
	Generar(ctx context.Context, filtros models.ReporteFiltros) (models.Reporte, error)
}

// Archivo guarda los reportes exportados
type Archivo interface {
	Guardar(ctx context.Context, exp *models.ReporteExportado) error
}

// Formularios purga las sesiones de agendamiento inactivas
type Formularios interface {
	Purgar(antiguedad time.Duration) int
}

// Bitacora elimina entradas antiguas de la bitácora
type Bitacora interface {
	EliminarAntiguos(ctx context.Context, dias int) (int64, error)
}

// Programador envuelve el cron del proceso
type Programador struct {
	cron   *cron.Cron
	logger zerolog.Logger
	ahora  func() time.Time
}

// New crea un programador. Un trabajo que entra en pánico se recupera y se registra.
func New(logger zerolog.Logger) *Programador {
	l := logger.With().Str("component", "tareas").Logger()
	cl := cronLogger{l}
	return &Programador{
		cron:   cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		logger: l,
		ahora:  time.Now,
	}
}

// ProgramarSnapshot archiva cada día el reporte sin filtros
func (p *Programador) ProgramarSnapshot(spec string, gen Reportes, archivo Archivo) error {
	_, err := p.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeoutTrabajo)
		defer cancel()
		if err := p.Snapshot(ctx, gen, archivo); err != nil {
			p.logger.Error().Err(err).Msg("snapshot de reportes fallido")
		}
	})
	if err != nil {
		return fmt.Errorf("programar snapshot %q: %w", spec, err)
	}
	return nil
}

// Snapshot genera, serializa y archiva el reporte del momento
func (p *Programador) Snapshot(ctx context.Context, gen Reportes, archivo Archivo) error {
	filtros := models.ReporteFiltros{}
	reporte, err := gen.Generar(ctx, filtros)
	if err != nil {
		return err
	}
	snapshot, contenido, err := reportes.Exportar(reporte, filtros, p.ahora())
	if err != nil {
		return err
	}
	exp := reportes.NuevaExportacion(snapshot, contenido, models.OrigenProgramado)
	if err := archivo.Guardar(ctx, &exp); err != nil {
		return err
	}
	p.logger.Info().Str("id", exp.ID).Str("archivo", exp.NombreArchivo).Msg("reporte diario archivado")
	return nil
}

// ProgramarPurga elimina periódicamente los formularios sin actividad
func (p *Programador) ProgramarPurga(ttl time.Duration, formularios Formularios) error {
	_, err := p.cron.AddFunc(CadaPurga, func() {
		if n := formularios.Purgar(ttl); n > 0 {
			p.logger.Info().Int("formularios", n).Msg("formularios inactivos eliminados")
		}
	})
	if err != nil {
		return fmt.Errorf("programar purga: %w", err)
	}
	return nil
}

// ProgramarRetencion borra cada noche la bitácora más antigua que dias
func (p *Programador) ProgramarRetencion(bitacora Bitacora, dias int) error {
	_, err := p.cron.AddFunc(CronRetencion, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeoutTrabajo)
		defer cancel()
		n, err := bitacora.EliminarAntiguos(ctx, dias)
		if err != nil {
			p.logger.Error().Err(err).Msg("retención de bitácora fallida")
			return
		}
		p.logger.Info().Int64("eliminados", n).Int("dias", dias).Msg("bitácora depurada")
	})
	if err != nil {
		return fmt.Errorf("programar retención: %w", err)
	}
	return nil
}

// Trabajos devuelve cuántos trabajos están programados
func (p *Programador) Trabajos() int {
	return len(p.cron.Entries())
}

// Start arranca el cron en segundo plano
func (p *Programador) Start() {
	p.cron.Start()
}

// Stop detiene el cron y espera a que terminen los trabajos en curso
func (p *Programador) Stop(ctx context.Context) {
	select {
	case <-p.cron.Stop().Done():
	case <-ctx.Done():
		p.logger.Warn().Msg("trabajos programados sin terminar al apagar")
	}
}

// cronLogger adapta zerolog a la interfaz de logger de cron
type cronLogger struct {
	l zerolog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
