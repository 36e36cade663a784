package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lizet96/clinica-dental/config"
	"github.com/lizet96/clinica-dental/models"
)

// backendFake graba las peticiones recibidas y responde con handlers fijos
type backendFake struct {
	mu      sync.Mutex
	cuerpos map[string][]byte
	queries map[string]string
	mux     *http.ServeMux
}

func nuevoBackend() *backendFake {
	return &backendFake{
		cuerpos: make(map[string][]byte),
		queries: make(map[string]string),
		mux:     http.NewServeMux(),
	}
}

func (b *backendFake) responder(patron string, status int, body string) {
	b.mux.HandleFunc(patron, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.cuerpos[patron] = raw
		b.queries[patron] = r.URL.RawQuery
		b.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func (b *backendFake) cuerpo(patron string) map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	var doc map[string]interface{}
	_ = json.Unmarshal(b.cuerpos[patron], &doc)
	return doc
}

func nuevoCliente(t *testing.T, b *backendFake, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(b.mux)
	t.Cleanup(srv.Close)
	cfg := &config.Config{APIBaseURL: srv.URL + "/api/", APITimeout: 2 * time.Second}
	b.mux.Handle("/api/", http.StripPrefix("/api", b.mux))
	return New(cfg, zerolog.Nop(), opts...)
}

func TestListarDoctores(t *testing.T) {
	b := nuevoBackend()
	b.responder("GET /doctors", http.StatusOK, `[{"id":"D1","nombre":"Dra. López","horario":["08:00","08:30"]}]`)
	c := nuevoCliente(t, b)

	doctores, err := c.ListarDoctores(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doctores) != 1 || doctores[0].ID != "D1" || len(doctores[0].Horario) != 2 {
		t.Errorf("unexpected doctors: %+v", doctores)
	}
}

func TestListarDoctores_NullEsListaVacia(t *testing.T) {
	b := nuevoBackend()
	b.responder("GET /doctors", http.StatusOK, `null`)
	c := nuevoCliente(t, b)

	doctores, err := c.ListarDoctores(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if doctores == nil || len(doctores) != 0 {
		t.Errorf("expected empty list, got %v", doctores)
	}
}

func TestBuscarDoctor(t *testing.T) {
	b := nuevoBackend()
	b.responder("GET /doctors", http.StatusOK, `[{"id":"D1"},{"id":"D2","nombre":"Dr. Pérez"}]`)
	c := nuevoCliente(t, b)

	d, err := c.BuscarDoctor(context.Background(), "D2")
	if err != nil || d.Nombre != "Dr. Pérez" {
		t.Fatalf("unexpected result: %+v, %v", d, err)
	}
	if _, err := c.BuscarDoctor(context.Background(), "D9"); !IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestCrearDoctor_DerivaHorarioYCalendario(t *testing.T) {
	b := nuevoBackend()
	b.responder("POST /doctors", http.StatusCreated, `{"id":"D1","nombre":"Dra. López"}`)
	lunes := time.Date(2025, 5, 5, 9, 0, 0, 0, time.UTC)
	c := nuevoCliente(t, b, WithReloj(func() time.Time { return lunes }))

	_, err := c.CrearDoctor(context.Background(), models.DoctorRequest{
		Nombre:        "Dra. López",
		Especialidad:  "Ortodoncia",
		HorarioInicio: "08:00",
		HorarioFin:    "09:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := b.cuerpo("POST /doctors")
	horario, _ := doc["horario"].([]interface{})
	if len(horario) != 2 || horario[0] != "08:00" || horario[1] != "08:30" {
		t.Errorf("unexpected horario: %v", doc["horario"])
	}
	if doc["type"] != "doctor" || doc["activo"] != true {
		t.Errorf("expected type doctor and activo true, got %v/%v", doc["type"], doc["activo"])
	}
	if doc["horarioInicio"] != "08:00" || doc["nombre"] != "Dra. López" {
		t.Errorf("form fields not flattened: %v", doc)
	}
	dias, _ := doc["disponibilidades"].([]interface{})
	// 30 días corridos desde un lunes: 22 días hábiles
	if len(dias) != 22 {
		t.Errorf("expected 22 weekdays, got %d", len(dias))
	}
}

func TestActualizarDoctor(t *testing.T) {
	inicio, fin, nombre := "10:00", "11:00", "Dra. López"
	tests := []struct {
		name        string
		upd         models.DoctorUpdate
		wantHorario []interface{}
		wantInicio  interface{}
		wantFin     interface{}
	}{
		{"ambas horas", models.DoctorUpdate{HorarioInicio: &inicio, HorarioFin: &fin},
			[]interface{}{"10:00", "10:30"}, "10:00", "11:00"},
		{"sólo inicio", models.DoctorUpdate{HorarioInicio: &inicio},
			[]interface{}{"10:00", "10:30", "11:00", "11:30"}, "10:00", "12:00"},
		{"sólo fin", models.DoctorUpdate{HorarioFin: &fin},
			[]interface{}{"08:00", "08:30", "09:00", "09:30", "10:00", "10:30"}, "08:00", "11:00"},
		{"sin horas", models.DoctorUpdate{Nombre: &nombre}, nil, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := nuevoBackend()
			b.responder("GET /doctors", http.StatusOK, `[{"id":"D1","horarioInicio":"08:00","horarioFin":"12:00"}]`)
			b.responder("PUT /doctors/{id}", http.StatusOK, `{"id":"D1"}`)
			c := nuevoCliente(t, b)

			if _, err := c.ActualizarDoctor(context.Background(), "D1", tt.upd); err != nil {
				t.Fatal(err)
			}
			doc := b.cuerpo("PUT /doctors/{id}")
			horario, _ := doc["horario"].([]interface{})
			if len(horario) != len(tt.wantHorario) {
				t.Fatalf("unexpected horario %v, want %v", doc["horario"], tt.wantHorario)
			}
			for i := range horario {
				if horario[i] != tt.wantHorario[i] {
					t.Errorf("horario[%d] = %v, want %v", i, horario[i], tt.wantHorario[i])
				}
			}
			if doc["horarioInicio"] != tt.wantInicio || doc["horarioFin"] != tt.wantFin {
				t.Errorf("unexpected hours %v-%v", doc["horarioInicio"], doc["horarioFin"])
			}
		})
	}
}

func TestActualizarDoctor_FinAntesDelInicioGuardado(t *testing.T) {
	b := nuevoBackend()
	b.responder("GET /doctors", http.StatusOK, `[{"id":"D1","horarioInicio":"08:00","horarioFin":"09:00"}]`)
	b.responder("PUT /doctors/{id}", http.StatusOK, `{"id":"D1"}`)
	c := nuevoCliente(t, b)

	fin := "07:00"
	_, err := c.ActualizarDoctor(context.Background(), "D1", models.DoctorUpdate{HorarioFin: &fin})
	var gerr *Error
	if !errors.As(err, &gerr) || gerr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 error, got %v", err)
	}
	if doc := b.cuerpo("PUT /doctors/{id}"); doc != nil {
		t.Errorf("update must not reach the backend, sent %v", doc)
	}
}

func TestActualizarDoctor_DoctorInexistente(t *testing.T) {
	b := nuevoBackend()
	b.responder("GET /doctors", http.StatusOK, `[]`)
	c := nuevoCliente(t, b)

	inicio := "09:00"
	if _, err := c.ActualizarDoctor(context.Background(), "D9", models.DoctorUpdate{HorarioInicio: &inicio}); !IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestListarServicios_Clasifica(t *testing.T) {
	b := nuevoBackend()
	b.responder("GET /services", http.StatusOK,
		`[{"id":"S1","nombre":"Limpieza dental"},{"id":"S2","nombre":"Consulta","especialidad":"Pediatría"}]`)
	c := nuevoCliente(t, b)

	servicios, err := c.ListarServicios(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if servicios[0].Especialidad != "Higiene Dental" {
		t.Errorf("expected derived specialty, got %q", servicios[0].Especialidad)
	}
	if servicios[1].Especialidad != "Pediatría" {
		t.Errorf("backend specialty must be kept, got %q", servicios[1].Especialidad)
	}
}

func TestCrearServicio(t *testing.T) {
	b := nuevoBackend()
	b.responder("POST /services", http.StatusCreated, `{"id":"S1","nombre":"Implante dental"}`)
	c := nuevoCliente(t, b)

	s, err := c.CrearServicio(context.Background(), models.ServicioRequest{Nombre: "Implante dental", Duracion: 60, Precio: 1200})
	if err != nil {
		t.Fatal(err)
	}
	if b.cuerpo("POST /services")["especialidad"] != "Implantología" {
		t.Errorf("specialty not sent: %v", b.cuerpo("POST /services"))
	}
	if s.Especialidad != "Implantología" {
		t.Errorf("expected specialty on result, got %q", s.Especialidad)
	}
}

func TestListarCitas_Filtros(t *testing.T) {
	b := nuevoBackend()
	b.responder("GET /appointments", http.StatusOK, `[{"id":"C1","estado":"pendiente"}]`)
	c := nuevoCliente(t, b)

	citas, err := c.ListarCitas(context.Background(), models.CitaFiltros{Fecha: "2025-05-01", DoctorID: "D1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(citas) != 1 {
		t.Errorf("expected one appointment, got %d", len(citas))
	}
	q := b.queries["GET /appointments"]
	if !strings.Contains(q, "fecha=2025-05-01") || !strings.Contains(q, "doctorId=D1") {
		t.Errorf("unexpected query %q", q)
	}
}

func TestActualizarEstadoCita(t *testing.T) {
	b := nuevoBackend()
	b.responder("PUT /appointments/{id}/status", http.StatusOK, `{"id":"C1","estado":"cancelada","motivoCancelacion":"Emergencia médica"}`)
	c := nuevoCliente(t, b)

	cita, err := c.ActualizarEstadoCita(context.Background(), "C1", models.EstadoCitaRequest{
		Estado: models.EstadoCancelada,
		Motivo: "Emergencia médica",
	})
	if err != nil {
		t.Fatal(err)
	}
	if cita.Estado != models.EstadoCancelada {
		t.Errorf("unexpected state %q", cita.Estado)
	}
	doc := b.cuerpo("PUT /appointments/{id}/status")
	if doc["estado"] != "cancelada" || doc["motivo"] != "Emergencia médica" {
		t.Errorf("unexpected body %v", doc)
	}
}

func TestErrorDelBackend(t *testing.T) {
	b := nuevoBackend()
	b.responder("POST /appointments", http.StatusConflict, `{"error":"horario ocupado"}`)
	b.responder("DELETE /patients/{id}", http.StatusInternalServerError, `falla interna`)
	c := nuevoCliente(t, b)

	_, err := c.CrearCita(context.Background(), models.CitaRequest{})
	var gwErr *Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gwErr.Status != http.StatusConflict || gwErr.Message != "horario ocupado" {
		t.Errorf("unexpected error %+v", gwErr)
	}

	err = c.EliminarPaciente(context.Background(), "P1")
	if !errors.As(err, &gwErr) || gwErr.Message != "falla interna" {
		t.Errorf("expected plain text message, got %v", err)
	}
}

func TestTimeout(t *testing.T) {
	b := nuevoBackend()
	b.mux.HandleFunc("GET /services", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	})
	srv := httptest.NewServer(b.mux)
	defer srv.Close()
	c := New(&config.Config{APIBaseURL: srv.URL, APITimeout: 50 * time.Millisecond}, zerolog.Nop())

	_, err := c.ListarServicios(context.Background())
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !IsTimeout(err) {
		t.Errorf("expected IsTimeout, got %v", err)
	}
}

func TestReferencias_SinRespaldo(t *testing.T) {
	b := nuevoBackend()
	b.responder("GET /countries", http.StatusServiceUnavailable, ``)
	b.responder("GET /countries/{codigo}/cities", http.StatusOK, `[{"codigo":"LIM","nombre":"Lima","pais":"PE"}]`)
	b.responder("GET /branches", http.StatusOK, `[]`)
	c := nuevoCliente(t, b)

	if paises, err := c.ListarPaises(context.Background()); err == nil || paises != nil {
		t.Errorf("expected error without fallback, got %v / %v", paises, err)
	}
	ciudades, err := c.ListarCiudades(context.Background(), "PE")
	if err != nil || len(ciudades) != 1 || ciudades[0].Nombre != "Lima" {
		t.Errorf("unexpected cities %v / %v", ciudades, err)
	}
	sucursales, err := c.ListarSucursales(context.Background())
	if err != nil || sucursales == nil || len(sucursales) != 0 {
		t.Errorf("expected empty branches, got %v / %v", sucursales, err)
	}
}

func TestObtenerReporte_Query(t *testing.T) {
	b := nuevoBackend()
	b.responder("GET /reports", http.StatusOK, `{"citas":{"total":3}}`)
	c := nuevoCliente(t, b)

	r, err := c.ObtenerReporte(context.Background(), models.ReporteFiltros{Sucursal: "principal", FechaFin: "2025-05-31"})
	if err != nil {
		t.Fatal(err)
	}
	if r.Citas.Total != 3 {
		t.Errorf("unexpected report %+v", r)
	}
	q := b.queries["GET /reports"]
	if !strings.Contains(q, "sucursal=principal") || !strings.Contains(q, "fechaFin=2025-05-31") || strings.Contains(q, "tipoServicio") {
		t.Errorf("unexpected query %q", q)
	}
}

func TestCargarAgenda_DegradaPorSeccion(t *testing.T) {
	b := nuevoBackend()
	b.responder("GET /doctors", http.StatusOK, `[{"id":"D1"}]`)
	b.responder("GET /services", http.StatusBadGateway, ``)
	c := nuevoCliente(t, b)

	agenda := CargarAgenda(context.Background(), c)
	if len(agenda.Doctores) != 1 {
		t.Errorf("expected doctors loaded, got %v", agenda.Doctores)
	}
	if agenda.Servicios == nil || len(agenda.Servicios) != 0 {
		t.Errorf("expected empty services, got %v", agenda.Servicios)
	}
	if len(agenda.Advertencias) != 1 || !strings.Contains(agenda.Advertencias[0], "servicios") {
		t.Errorf("unexpected warnings %v", agenda.Advertencias)
	}
}

func TestCargarPacientes(t *testing.T) {
	b := nuevoBackend()
	b.responder("GET /patients", http.StatusOK, `[{"id":"P1","nombre":"Ana","apellido":"Ruiz"}]`)
	b.responder("GET /countries", http.StatusOK, `[{"codigo":"PE","nombre":"Perú"}]`)
	c := nuevoCliente(t, b)

	p := CargarPacientes(context.Background(), c)
	if len(p.Pacientes) != 1 || len(p.Paises) != 1 || len(p.Advertencias) != 0 {
		t.Errorf("unexpected screen %+v", p)
	}
}
