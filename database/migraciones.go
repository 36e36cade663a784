package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migraciones/*.sql
var archivosMigracion embed.FS

// Migracion es un archivo SQL versionado ("001_logs.sql" -> versión 1)
type Migracion struct {
	Version int
	Nombre  string
	SQL     string
}

// EstadoMigracion indica si una migración ya se aplicó
type EstadoMigracion struct {
	Version    int
	Nombre     string
	Aplicada   bool
	AplicadaEn *time.Time
}

// Migrator aplica las migraciones embebidas y las registra en _migrations
type Migrator struct {
	pool     *pgxpool.Pool
	archivos fs.FS
}

// NewMigrator crea un migrator sobre las migraciones embebidas
func NewMigrator(pool *pgxpool.Pool) *Migrator {
	sub, _ := fs.Sub(archivosMigracion, "migraciones")
	return &Migrator{pool: pool, archivos: sub}
}

func (m *Migrator) asegurarTabla(ctx context.Context) error {
	_, err := m.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS _migrations (
    version INTEGER PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    applied_at TIMESTAMPTZ DEFAULT NOW()
)`)
	if err != nil {
		return fmt.Errorf("crear tabla _migrations: %w", err)
	}
	return nil
}

// CargarMigraciones lee los .sql ordenados por versión. Los archivos sin
// prefijo numérico se ignoran.
func CargarMigraciones(archivos fs.FS) ([]Migracion, error) {
	entradas, err := fs.ReadDir(archivos, ".")
	if err != nil {
		return nil, fmt.Errorf("leer migraciones: %w", err)
	}

	var migraciones []Migracion
	for _, e := range entradas {
		nombre := e.Name()
		if e.IsDir() || !strings.HasSuffix(nombre, ".sql") {
			continue
		}
		partes := strings.SplitN(nombre, "_", 2)
		if len(partes) < 2 {
			continue
		}
		version, err := strconv.Atoi(partes[0])
		if err != nil {
			continue
		}
		contenido, err := fs.ReadFile(archivos, nombre)
		if err != nil {
			return nil, fmt.Errorf("leer migración %s: %w", nombre, err)
		}
		migraciones = append(migraciones, Migracion{Version: version, Nombre: nombre, SQL: string(contenido)})
	}

	sort.Slice(migraciones, func(i, j int) bool {
		return migraciones[i].Version < migraciones[j].Version
	})
	return migraciones, nil
}

func (m *Migrator) aplicadas(ctx context.Context) (map[int]time.Time, error) {
	rows, err := m.pool.Query(ctx, `SELECT version, applied_at FROM _migrations`)
	if err != nil {
		return nil, fmt.Errorf("consultar migraciones aplicadas: %w", err)
	}
	defer rows.Close()

	aplicadas := make(map[int]time.Time)
	for rows.Next() {
		var v int
		var en time.Time
		if err := rows.Scan(&v, &en); err != nil {
			return nil, fmt.Errorf("leer versión aplicada: %w", err)
		}
		aplicadas[v] = en
	}
	return aplicadas, rows.Err()
}

// Up aplica las migraciones pendientes, cada una en su transacción, y
// devuelve cuántas se aplicaron.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.asegurarTabla(ctx); err != nil {
		return 0, err
	}
	migraciones, err := CargarMigraciones(m.archivos)
	if err != nil {
		return 0, err
	}
	aplicadas, err := m.aplicadas(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, mig := range migraciones {
		if _, ok := aplicadas[mig.Version]; ok {
			continue
		}
		if err := m.aplicar(ctx, mig); err != nil {
			return total, fmt.Errorf("aplicar migración %d (%s): %w", mig.Version, mig.Nombre, err)
		}
		total++
	}
	return total, nil
}

func (m *Migrator) aplicar(ctx context.Context, mig Migracion) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, mig.SQL); err != nil {
		return fmt.Errorf("ejecutar SQL: %w", err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO _migrations (version, name) VALUES ($1, $2)`, mig.Version, mig.Nombre); err != nil {
		return fmt.Errorf("registrar migración: %w", err)
	}
	return tx.Commit(ctx)
}

// Status devuelve el estado de cada migración conocida
func (m *Migrator) Status(ctx context.Context) ([]EstadoMigracion, error) {
	if err := m.asegurarTabla(ctx); err != nil {
		return nil, err
	}
	migraciones, err := CargarMigraciones(m.archivos)
	if err != nil {
		return nil, err
	}
	aplicadas, err := m.aplicadas(ctx)
	if err != nil {
		return nil, err
	}

	estados := make([]EstadoMigracion, 0, len(migraciones))
	for _, mig := range migraciones {
		estado := EstadoMigracion{Version: mig.Version, Nombre: mig.Nombre}
		if en, ok := aplicadas[mig.Version]; ok {
			estado.Aplicada = true
			estado.AplicadaEn = &en
		}
		estados = append(estados, estado)
	}
	return estados, nil
}
