package database

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lizet96/clinica-dental/models"
)

// dbFake registra las sentencias ejecutadas
type dbFake struct {
	sql  []string
	args [][]interface{}
	tag  string
	err  error
}

func (d *dbFake) Exec(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	d.sql = append(d.sql, sql)
	d.args = append(d.args, args)
	return pgconn.NewCommandTag(d.tag), d.err
}

func (d *dbFake) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("no soportado")
}

func (d *dbFake) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return filaError{}
}

type filaError struct{}

func (filaError) Scan(...interface{}) error { return pgx.ErrNoRows }

func TestConstruirFiltro(t *testing.T) {
	where, args := construirFiltro(models.LogFiltros{})
	if where != "" || len(args) != 0 {
		t.Errorf("expected no filter, got %q %v", where, args)
	}

	where, args = construirFiltro(models.LogFiltros{
		LogLevel:    "error",
		Method:      "post",
		StatusCode:  502,
		Path:        "citas",
		FechaInicio: "2025-05-01",
		FechaFin:    "2025-05-31",
	})
	want := "WHERE log_level = $1 AND method = $2 AND status_code = $3 AND path ILIKE $4 AND timestamp >= $5 AND timestamp < $6"
	if where != want {
		t.Errorf("unexpected where:\n got %s\nwant %s", where, want)
	}
	if len(args) != 6 || args[1] != "POST" || args[3] != "%citas%" {
		t.Errorf("unexpected args %v", args)
	}
	fin, _ := args[5].(time.Time)
	if !fin.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end date must include the whole day, got %v", fin)
	}
}

func TestConstruirFiltro_FechaInvalidaSeIgnora(t *testing.T) {
	where, args := construirFiltro(models.LogFiltros{FechaInicio: "ayer", IP: "10.0.0.1"})
	if where != "WHERE ip = $1" || len(args) != 1 {
		t.Errorf("unexpected filter %q %v", where, args)
	}
}

func TestNormalizarPagina(t *testing.T) {
	tests := []struct {
		in        models.LogFiltros
		wantPage  int
		wantLimit int
	}{
		{models.LogFiltros{}, 1, LimitePorDefecto},
		{models.LogFiltros{Page: 3, Limit: 20}, 3, 20},
		{models.LogFiltros{Page: -1, Limit: 10000}, 1, LimiteMaximo},
	}
	for _, tt := range tests {
		got := normalizarPagina(tt.in)
		if got.Page != tt.wantPage || got.Limit != tt.wantLimit {
			t.Errorf("normalizarPagina(%+v) = %d/%d, want %d/%d", tt.in, got.Page, got.Limit, tt.wantPage, tt.wantLimit)
		}
	}
}

func TestCargarMigraciones(t *testing.T) {
	archivos := fstest.MapFS{
		"010_indices.sql": {Data: []byte("CREATE INDEX x ON t (a);")},
		"002_exports.sql": {Data: []byte("CREATE TABLE e ();")},
		"readme.md":       {Data: []byte("docs")},
		"sin_version.sql": {Data: []byte("SELECT 1;")},
		"001_logs.sql":    {Data: []byte("CREATE TABLE logs ();")},
	}
	migraciones, err := CargarMigraciones(archivos)
	if err != nil {
		t.Fatal(err)
	}
	if len(migraciones) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migraciones))
	}
	versiones := []int{migraciones[0].Version, migraciones[1].Version, migraciones[2].Version}
	if versiones[0] != 1 || versiones[1] != 2 || versiones[2] != 10 {
		t.Errorf("unexpected order %v", versiones)
	}
}

func TestMigracionesEmbebidas(t *testing.T) {
	m := NewMigrator(nil)
	migraciones, err := CargarMigraciones(m.archivos)
	if err != nil {
		t.Fatal(err)
	}
	if len(migraciones) < 2 {
		t.Fatalf("expected embedded migrations, got %d", len(migraciones))
	}
	if !strings.Contains(migraciones[0].SQL, "CREATE TABLE IF NOT EXISTS logs") {
		t.Error("first migration must create the logs table")
	}
	if !strings.Contains(migraciones[1].SQL, "report_exports") {
		t.Error("second migration must create report_exports")
	}
}

func TestLogRepository_Crear(t *testing.T) {
	db := &dbFake{tag: "INSERT 0 1"}
	repo := NewLogRepository(db)

	err := repo.Crear(context.Background(), models.CreateLogRequest{
		Method:     "GET",
		Path:       "/api/v1/citas",
		StatusCode: 200,
		IP:         "127.0.0.1",
		LogLevel:   models.LogLevelSuccess,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(db.sql) != 1 || !strings.Contains(db.sql[0], "INSERT INTO logs") {
		t.Fatalf("unexpected statements %v", db.sql)
	}
	ts, _ := db.args[0][11].(time.Time)
	if ts.IsZero() {
		t.Error("timestamp must default to now")
	}
}

func TestLogRepository_EliminarAntiguos(t *testing.T) {
	db := &dbFake{tag: "DELETE 7"}
	n, err := NewLogRepository(db).EliminarAntiguos(context.Background(), 30)
	if err != nil {
		t.Fatal(err)
	}
	if n != 7 {
		t.Errorf("expected 7 rows, got %d", n)
	}
	if db.args[0][0] != 30 {
		t.Errorf("days must be a bound parameter, got %v", db.args[0])
	}
}

func TestExportRepository_Obtener(t *testing.T) {
	repo := NewExportRepository(&dbFake{})
	if _, err := repo.Obtener(context.Background(), "no-es-uuid"); !errors.Is(err, ErrNoEncontrado) {
		t.Errorf("expected ErrNoEncontrado for invalid id, got %v", err)
	}
	if _, err := repo.Obtener(context.Background(), "6f1c1f8e-2b7a-4c43-9d55-0e6f0b6b8a10"); !errors.Is(err, ErrNoEncontrado) {
		t.Errorf("expected ErrNoEncontrado for missing row, got %v", err)
	}
}

func TestExportRepository_GuardarAsignaID(t *testing.T) {
	repo := NewExportRepository(&dbFake{})
	exp := &models.ReporteExportado{NombreArchivo: "reporte-clinica-2025-05-14.json", Contenido: []byte(`{}`)}
	// La fila falsa falla al escanear, pero el id ya quedó asignado
	if err := repo.Guardar(context.Background(), exp); err == nil {
		t.Fatal("expected scan error from fake row")
	}
	if exp.ID == "" {
		t.Error("expected generated id")
	}
}
