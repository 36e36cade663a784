package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lizet96/clinica-dental/models"
)

// ErrNoEncontrado indica que el registro pedido no existe
var ErrNoEncontrado = errors.New("registro no encontrado")

// ExportRepository archiva los reportes exportados
type ExportRepository struct {
	db DBTX
}

// NewExportRepository crea el repositorio sobre el pool
func NewExportRepository(db DBTX) *ExportRepository {
	return &ExportRepository{db: db}
}

// Guardar archiva una exportación y completa su id
func (r *ExportRepository) Guardar(ctx context.Context, exp *models.ReporteExportado) error {
	if exp.ID == "" {
		exp.ID = uuid.New().String()
	}
	filtros, err := json.Marshal(exp.Filtros)
	if err != nil {
		return fmt.Errorf("serializar filtros: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO report_exports (id, nombre_archivo, origen, filtros, contenido, fecha_generacion)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6)
		RETURNING created_at`,
		exp.ID, exp.NombreArchivo, exp.Origen, string(filtros), string(exp.Contenido), exp.FechaGeneracion,
	).Scan(&exp.CreatedAt)
	if err != nil {
		return fmt.Errorf("guardar exportación: %w", err)
	}
	return nil
}

// Listar devuelve las últimas exportaciones sin su contenido
func (r *ExportRepository) Listar(ctx context.Context, limite int) ([]models.ReporteExportado, error) {
	if limite < 1 || limite > LimiteMaximo {
		limite = LimitePorDefecto
	}
	rows, err := r.db.Query(ctx, `
		SELECT id::text, nombre_archivo, origen, filtros::text, fecha_generacion, created_at
		FROM report_exports
		ORDER BY fecha_generacion DESC
		LIMIT $1`, limite)
	if err != nil {
		return nil, fmt.Errorf("listar exportaciones: %w", err)
	}
	defer rows.Close()

	exportaciones := []models.ReporteExportado{}
	for rows.Next() {
		var exp models.ReporteExportado
		var filtros string
		if err := rows.Scan(&exp.ID, &exp.NombreArchivo, &exp.Origen, &filtros, &exp.FechaGeneracion, &exp.CreatedAt); err != nil {
			return nil, fmt.Errorf("leer exportación: %w", err)
		}
		if err := json.Unmarshal([]byte(filtros), &exp.Filtros); err != nil {
			return nil, fmt.Errorf("decodificar filtros: %w", err)
		}
		exportaciones = append(exportaciones, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recorrer exportaciones: %w", err)
	}
	return exportaciones, nil
}

// Obtener devuelve una exportación con su contenido
func (r *ExportRepository) Obtener(ctx context.Context, id string) (*models.ReporteExportado, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNoEncontrado
	}

	var exp models.ReporteExportado
	var filtros, contenido string
	err := r.db.QueryRow(ctx, `
		SELECT id::text, nombre_archivo, origen, filtros::text, contenido::text, fecha_generacion, created_at
		FROM report_exports
		WHERE id = $1`, id,
	).Scan(&exp.ID, &exp.NombreArchivo, &exp.Origen, &filtros, &contenido, &exp.FechaGeneracion, &exp.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("obtener exportación: %w", err)
	}
	if err := json.Unmarshal([]byte(filtros), &exp.Filtros); err != nil {
		return nil, fmt.Errorf("decodificar filtros: %w", err)
	}
	exp.Contenido = json.RawMessage(contenido)
	return &exp, nil
}
