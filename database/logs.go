package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lizet96/clinica-dental/models"
)

// Límites de paginación de la bitácora
const (
	LimitePorDefecto = 50
	LimiteMaximo     = 500
)

// LogRepository persiste la bitácora de actividad de la consola
type LogRepository struct {
	db DBTX
}

// NewLogRepository crea el repositorio sobre el pool
func NewLogRepository(db DBTX) *LogRepository {
	return &LogRepository{db: db}
}

// Crear inserta una entrada de bitácora
func (r *LogRepository) Crear(ctx context.Context, entrada models.CreateLogRequest) error {
	if entrada.Timestamp.IsZero() {
		entrada.Timestamp = time.Now()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO logs (
			request_id, method, path, status_code, response_time, user_agent,
			ip, body, query, log_level, environment, timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		entrada.RequestID,
		entrada.Method,
		entrada.Path,
		entrada.StatusCode,
		entrada.ResponseTime,
		entrada.UserAgent,
		entrada.IP,
		entrada.Body,
		entrada.Query,
		entrada.LogLevel,
		entrada.Environment,
		entrada.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("guardar log: %w", err)
	}
	return nil
}

// normalizarPagina aplica los valores por defecto de página y límite
func normalizarPagina(f models.LogFiltros) models.LogFiltros {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = LimitePorDefecto
	}
	if f.Limit > LimiteMaximo {
		f.Limit = LimiteMaximo
	}
	return f
}

// construirFiltro arma el WHERE dinámico de la bitácora y sus argumentos
func construirFiltro(f models.LogFiltros) (string, []interface{}) {
	var condiciones []string
	var args []interface{}
	agregar := func(condicion string, valor interface{}) {
		args = append(args, valor)
		condiciones = append(condiciones, fmt.Sprintf(condicion, len(args)))
	}

	if f.LogLevel != "" {
		agregar("log_level = $%d", f.LogLevel)
	}
	if f.Method != "" {
		agregar("method = $%d", strings.ToUpper(f.Method))
	}
	if f.StatusCode != 0 {
		agregar("status_code = $%d", f.StatusCode)
	}
	if f.IP != "" {
		agregar("ip = $%d", f.IP)
	}
	if f.Path != "" {
		agregar("path ILIKE $%d", "%"+f.Path+"%")
	}
	if f.FechaInicio != "" {
		if fecha, err := time.Parse("2006-01-02", f.FechaInicio); err == nil {
			agregar("timestamp >= $%d", fecha)
		}
	}
	if f.FechaFin != "" {
		if fecha, err := time.Parse("2006-01-02", f.FechaFin); err == nil {
			// Incluye el día completo
			agregar("timestamp < $%d", fecha.Add(24*time.Hour))
		}
	}

	if len(condiciones) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(condiciones, " AND "), args
}

// Listar devuelve una página de la bitácora y el total que cumple los filtros
func (r *LogRepository) Listar(ctx context.Context, filtros models.LogFiltros) ([]models.Log, int, error) {
	filtros = normalizarPagina(filtros)
	where, args := construirFiltro(filtros)

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM logs "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("contar logs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id_log, request_id, method, path, status_code, response_time,
		       user_agent, ip, body, query, log_level, environment, timestamp
		FROM logs %s
		ORDER BY timestamp DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, filtros.Limit, (filtros.Page-1)*filtros.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listar logs: %w", err)
	}
	defer rows.Close()

	logs := []models.Log{}
	for rows.Next() {
		var l models.Log
		if err := rows.Scan(
			&l.IDLog, &l.RequestID, &l.Method, &l.Path, &l.StatusCode, &l.ResponseTime,
			&l.UserAgent, &l.IP, &l.Body, &l.Query, &l.LogLevel, &l.Environment, &l.Timestamp,
		); err != nil {
			return nil, 0, fmt.Errorf("leer log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("recorrer logs: %w", err)
	}
	return logs, total, nil
}

// Estadisticas resume la bitácora de las últimas horas
func (r *LogRepository) Estadisticas(ctx context.Context, desde time.Duration) (models.LogEstadisticas, error) {
	stats := models.LogEstadisticas{
		PorNivel:  map[string]int{},
		PorMetodo: map[string]int{},
	}
	limite := time.Now().Add(-desde)

	if err := r.contarPor(ctx, "log_level", limite, stats.PorNivel); err != nil {
		return stats, err
	}
	if err := r.contarPor(ctx, "method", limite, stats.PorMetodo); err != nil {
		return stats, err
	}
	for _, n := range stats.PorNivel {
		stats.Total += n
	}

	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(AVG(response_time), 0)::float8
		FROM logs
		WHERE timestamp >= $1 AND response_time IS NOT NULL`, limite).Scan(&stats.TiempoMedio)
	if err != nil {
		return stats, fmt.Errorf("tiempo medio de respuesta: %w", err)
	}
	return stats, nil
}

// contarPor agrupa por una columna fija (nunca viene del usuario)
func (r *LogRepository) contarPor(ctx context.Context, columna string, desde time.Time, destino map[string]int) error {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s, COUNT(*)
		FROM logs
		WHERE timestamp >= $1
		GROUP BY %s`, columna, columna), desde)
	if err != nil {
		return fmt.Errorf("agrupar logs por %s: %w", columna, err)
	}
	defer rows.Close()

	for rows.Next() {
		var clave string
		var n int
		if err := rows.Scan(&clave, &n); err != nil {
			return fmt.Errorf("leer grupo %s: %w", columna, err)
		}
		destino[clave] = n
	}
	return rows.Err()
}

// EliminarAntiguos borra las entradas con más de dias días y devuelve cuántas
func (r *LogRepository) EliminarAntiguos(ctx context.Context, dias int) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM logs WHERE timestamp < NOW() - make_interval(days => $1)`, dias)
	if err != nil {
		return 0, fmt.Errorf("limpiar logs: %w", err)
	}
	return tag.RowsAffected(), nil
}
