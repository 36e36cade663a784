package agendamiento

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func aplicarTodos(t *testing.T, e Estado, eventos ...Evento) Estado {
	t.Helper()
	for _, ev := range eventos {
		var err error
		e, err = Aplicar(e, ev)
		if err != nil {
			t.Fatalf("Aplicar(%s=%q) error: %v", ev.Tipo, ev.Valor, err)
		}
	}
	return e
}

func TestInicial(t *testing.T) {
	e := Inicial()
	if e.Fase != FaseSinSeleccion {
		t.Errorf("expected fase %s, got %s", FaseSinSeleccion, e.Fase)
	}
	if e.Horarios == nil || len(e.Horarios) != 0 {
		t.Errorf("expected empty non-nil horarios, got %v", e.Horarios)
	}
	if e.PuedeEnviar() || e.MostrarHoras() {
		t.Error("empty form must not be submittable nor show slots")
	}
}

func TestAplicar_DoctorYFechaPidenDisponibilidad(t *testing.T) {
	e := aplicarTodos(t, Inicial(), Evento{Tipo: EventoDoctor, Valor: "D1"})
	if e.Fase != FaseSinSeleccion {
		t.Errorf("only doctor set: expected %s, got %s", FaseSinSeleccion, e.Fase)
	}

	e = aplicarTodos(t, e, Evento{Tipo: EventoFecha, Valor: "2025-05-01"})
	if e.Fase != FaseCargando {
		t.Fatalf("doctor and date set: expected %s, got %s", FaseCargando, e.Fase)
	}
	if !e.MostrarHoras() {
		t.Error("expected MostrarHoras with doctor and date")
	}
	if e.Generacion != 2 {
		t.Errorf("expected generation 2, got %d", e.Generacion)
	}
}

func TestAplicar_CambioDeDoctorOFechaLimpiaHora(t *testing.T) {
	tests := []struct {
		name   string
		evento Evento
	}{
		{"doctor", Evento{Tipo: EventoDoctor, Valor: "D2"}},
		{"fecha", Evento{Tipo: EventoFecha, Valor: "2025-05-02"}},
		{"mismo doctor", Evento{Tipo: EventoDoctor, Valor: "D1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := aplicarTodos(t, Inicial(),
				Evento{Tipo: EventoDoctor, Valor: "D1"},
				Evento{Tipo: EventoFecha, Valor: "2025-05-01"},
			)
			e, _ = e.AplicarDisponibilidad(e.Generacion, []string{"08:00", "09:00"})
			e = aplicarTodos(t, e, Evento{Tipo: EventoHora, Valor: "09:00"})
			if e.Hora != "09:00" {
				t.Fatalf("expected hora selected, got %q", e.Hora)
			}

			e = aplicarTodos(t, e, tt.evento)
			if e.Hora != "" {
				t.Errorf("expected hora cleared after %s change, got %q", tt.name, e.Hora)
			}
			if len(e.Horarios) != 0 {
				t.Errorf("expected slot list emptied, got %v", e.Horarios)
			}
			if e.Fase != FaseCargando {
				t.Errorf("expected %s, got %s", FaseCargando, e.Fase)
			}
		})
	}
}

func TestAplicar_QuitarDoctorOcultaHoras(t *testing.T) {
	e := aplicarTodos(t, Inicial(),
		Evento{Tipo: EventoDoctor, Valor: "D1"},
		Evento{Tipo: EventoFecha, Valor: "2025-05-01"},
		Evento{Tipo: EventoDoctor, Valor: ""},
	)
	if e.MostrarHoras() {
		t.Error("slots must be hidden without doctor")
	}
	if e.Fase != FaseSinSeleccion {
		t.Errorf("expected %s, got %s", FaseSinSeleccion, e.Fase)
	}
}

func TestAplicar_Hora(t *testing.T) {
	base := aplicarTodos(t, Inicial(),
		Evento{Tipo: EventoDoctor, Valor: "D1"},
		Evento{Tipo: EventoFecha, Valor: "2025-05-01"},
	)
	lista, _ := base.AplicarDisponibilidad(base.Generacion, []string{"08:00", "09:00"})

	tests := []struct {
		name    string
		estado  Estado
		hora    string
		wantErr error
	}{
		{"disponible", lista, "09:00", nil},
		{"no disponible", lista, "08:30", ErrHoraNoDisponible},
		{"mientras carga", base, "08:00", ErrHoraNoDisponible},
		{"sin doctor", Inicial(), "08:00", ErrHoraSinSeleccion},
		{"vaciar", lista, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Aplicar(tt.estado, Evento{Tipo: EventoHora, Valor: tt.hora})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if err != nil && !reflect.DeepEqual(got, tt.estado) {
				t.Error("rejected event must leave state unchanged")
			}
			if err == nil && got.Hora != tt.hora {
				t.Errorf("expected hora %q, got %q", tt.hora, got.Hora)
			}
		})
	}
}

func TestAplicar_NotasSeTruncan(t *testing.T) {
	largo := strings.Repeat("ñ", 520)
	e := aplicarTodos(t, Inicial(), Evento{Tipo: EventoNotas, Valor: largo})
	if got := len([]rune(e.Notas)); got != 500 {
		t.Errorf("expected 500 characters, got %d", got)
	}
	if e.NotasRestantes() != 0 {
		t.Errorf("expected 0 remaining, got %d", e.NotasRestantes())
	}

	e = aplicarTodos(t, e, Evento{Tipo: EventoNotas, Valor: "dolor en muela"})
	if e.NotasRestantes() != 486 {
		t.Errorf("expected 486 remaining, got %d", e.NotasRestantes())
	}
}

func TestAplicar_EventoDesconocido(t *testing.T) {
	e := Inicial()
	got, err := Aplicar(e, Evento{Tipo: "telefono", Valor: "555"})
	if !errors.Is(err, ErrEventoDesconocido) {
		t.Fatalf("expected ErrEventoDesconocido, got %v", err)
	}
	if !reflect.DeepEqual(got, e) {
		t.Error("state must not change on unknown event")
	}
}

func TestAplicarDisponibilidad(t *testing.T) {
	e := aplicarTodos(t, Inicial(),
		Evento{Tipo: EventoDoctor, Valor: "D1"},
		Evento{Tipo: EventoFecha, Valor: "2025-05-01"},
	)
	viejo := e.Generacion
	e = aplicarTodos(t, e, Evento{Tipo: EventoFecha, Valor: "2025-05-02"})

	got, ok := e.AplicarDisponibilidad(viejo, []string{"08:00"})
	if ok {
		t.Fatal("stale availability must be discarded")
	}
	if got.Fase != FaseCargando || len(got.Horarios) != 0 {
		t.Errorf("stale result changed state: %+v", got)
	}

	got, ok = e.AplicarDisponibilidad(e.Generacion, []string{})
	if !ok {
		t.Fatal("current availability must be applied")
	}
	if got.Fase != FaseSinHorarios {
		t.Errorf("empty result: expected %s, got %s", FaseSinHorarios, got.Fase)
	}

	horas := []string{"08:00", "08:30"}
	got, _ = e.AplicarDisponibilidad(e.Generacion, horas)
	if got.Fase != FaseLista || !reflect.DeepEqual(got.Horarios, horas) {
		t.Errorf("unexpected state: %+v", got)
	}
	horas[0] = "10:00"
	if got.Horarios[0] != "08:00" {
		t.Error("slot list must not alias the caller's slice")
	}

	// Una segunda respuesta con la misma generación ya no aplica
	if _, ok := got.AplicarDisponibilidad(e.Generacion, []string{"11:00"}); ok {
		t.Error("availability must apply only while loading")
	}
}

func TestPuedeEnviar(t *testing.T) {
	completo := Estado{
		PacienteNombre: "Ana Ruiz",
		DoctorID:       "D1",
		ServicioID:     "S1",
		Fecha:          "2025-05-01",
		Hora:           "09:00",
	}
	if !completo.PuedeEnviar() {
		t.Fatal("expected complete form to be submittable")
	}

	quitar := map[string]func(e *Estado){
		"paciente":        func(e *Estado) { e.PacienteNombre = "" },
		"paciente blanco": func(e *Estado) { e.PacienteNombre = "   " },
		"doctor":          func(e *Estado) { e.DoctorID = "" },
		"servicio":        func(e *Estado) { e.ServicioID = "" },
		"fecha":           func(e *Estado) { e.Fecha = "" },
		"hora":            func(e *Estado) { e.Hora = "" },
	}
	for name, fn := range quitar {
		t.Run(name, func(t *testing.T) {
			e := completo
			fn(&e)
			if e.PuedeEnviar() {
				t.Errorf("form without %s must not be submittable", name)
			}
		})
	}
}

func TestLimpiar_Idempotente(t *testing.T) {
	e := aplicarTodos(t, Inicial(),
		Evento{Tipo: EventoPaciente, Valor: "Ana Ruiz"},
		Evento{Tipo: EventoDoctor, Valor: "D1"},
		Evento{Tipo: EventoFecha, Valor: "2025-05-01"},
		Evento{Tipo: EventoServicio, Valor: "S1"},
		Evento{Tipo: EventoNotas, Valor: "primera visita"},
	)

	una := aplicarTodos(t, e, Evento{Tipo: EventoLimpiar})
	dos := aplicarTodos(t, una, Evento{Tipo: EventoLimpiar})
	if !reflect.DeepEqual(una, dos) {
		t.Errorf("clear twice differs from once: %+v vs %+v", una, dos)
	}
	if una.PacienteNombre != "" || una.DoctorID != "" || una.Notas != "" || una.Fase != FaseSinSeleccion {
		t.Errorf("expected empty form, got %+v", una)
	}

	// Una disponibilidad pedida antes de limpiar no revive el formulario
	if _, ok := una.AplicarDisponibilidad(e.Generacion, []string{"08:00"}); ok {
		t.Error("availability requested before clear must be discarded")
	}
}

func TestLimpiar_VistaIgualAInicial(t *testing.T) {
	e := aplicarTodos(t, Inicial(),
		Evento{Tipo: EventoPaciente, Valor: "Ana Ruiz"},
		Evento{Tipo: EventoDoctor, Valor: "D1"},
		Evento{Tipo: EventoFecha, Valor: "2025-05-10"},
	)
	limpio := e.Limpiar()
	if limpio.Generacion == 0 {
		t.Fatal("cleared form must keep its generation")
	}

	got, err := json.Marshal(limpio)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := json.Marshal(Inicial())
	if string(got) != string(want) {
		t.Errorf("cleared view %s differs from initial %s", got, want)
	}
}

func TestSolicitud(t *testing.T) {
	e := Estado{
		PacienteNombre: "  Ana Ruiz ",
		DoctorID:       "D1",
		ServicioID:     "S1",
		Fecha:          "2025-05-01",
		Hora:           "09:00",
		Notas:          " sensibilidad ",
	}
	req := e.Solicitud()
	if req.PacienteNombre != "Ana Ruiz" || req.Notas != "sensibilidad" {
		t.Errorf("expected trimmed values, got %+v", req)
	}
	if req.DoctorID != "D1" || req.ServicioID != "S1" || req.Fecha != "2025-05-01" || req.Hora != "09:00" {
		t.Errorf("unexpected request: %+v", req)
	}
}
