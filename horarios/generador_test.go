package horarios

import (
	"reflect"
	"testing"
	"time"
)

func TestGenerarHorario_Scenario(t *testing.T) {
	got := GenerarHorario("08:00", "09:00")
	want := []string{"08:00", "08:30"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestGenerarHorario_Properties(t *testing.T) {
	for desde := 0; desde < 24*60; desde += Intervalo {
		for hasta := desde + Intervalo; hasta <= 24*60; hasta += 4 * Intervalo {
			inicio, fin := FormatearHora(desde), FormatearHora(hasta)
			horario := GenerarHorario(inicio, fin)

			if len(horario) != (hasta-desde)/Intervalo {
				t.Fatalf("%s-%s: expected %d slots, got %d", inicio, fin, (hasta-desde)/Intervalo, len(horario))
			}
			if horario[0] != inicio {
				t.Fatalf("%s-%s: first slot %s", inicio, fin, horario[0])
			}
			for i := 1; i < len(horario); i++ {
				if horario[i] <= horario[i-1] {
					t.Fatalf("%s-%s: not strictly ascending at %d: %v", inicio, fin, i, horario)
				}
			}
			if horario[len(horario)-1] >= fin {
				t.Fatalf("%s-%s: last slot %s not before closing", inicio, fin, horario[len(horario)-1])
			}
		}
	}
}

func TestGenerarHorario_UnalignedClosing(t *testing.T) {
	got := GenerarHorario("08:00", "09:15")
	want := []string{"08:00", "08:30", "09:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestGenerarHorario_InvalidInputIsEmpty(t *testing.T) {
	tests := []struct{ inicio, fin string }{
		{"09:00", "08:00"},
		{"08:00", "08:00"},
		{"ocho", "09:00"},
		{"08:00", ""},
		{"25:00", "26:00"},
		{"08:61", "09:00"},
	}
	for _, tt := range tests {
		got := GenerarHorario(tt.inicio, tt.fin)
		if got == nil || len(got) != 0 {
			t.Errorf("GenerarHorario(%q, %q) = %v, expected empty non-nil list", tt.inicio, tt.fin, got)
		}
	}
}

func TestParseHora(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:30", 510, false},
		{"8:30", 510, false},
		{"24:00", 1440, false},
		{"24:30", 0, true},
		{"12", 0, true},
		{"aa:bb", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseHora(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHora(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHora(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAlineado(t *testing.T) {
	if !Alineado("09:30", "08:00") {
		t.Error("expected 09:30 aligned with 08:00")
	}
	if Alineado("09:15", "08:00") {
		t.Error("expected 09:15 not aligned with 08:00")
	}
	if Alineado("07:30", "08:00") {
		t.Error("expected 07:30 before opening not aligned")
	}
}

func TestCalendarioInicial_SoloDiasHabiles(t *testing.T) {
	// Lunes 5 de mayo de 2025
	desde := time.Date(2025, 5, 5, 10, 0, 0, 0, time.UTC)
	horario := []string{"08:00", "08:30"}

	cal := CalendarioInicial(desde, DiasCalendario, horario)

	// 30 días a partir de un lunes: 4 semanas completas + 2 días hábiles
	if len(cal) != 22 {
		t.Fatalf("expected 22 weekdays, got %d", len(cal))
	}
	if cal[0].Fecha != "2025-05-05" {
		t.Errorf("expected first date 2025-05-05, got %s", cal[0].Fecha)
	}
	for _, dia := range cal {
		f, err := time.Parse("2006-01-02", dia.Fecha)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Weekday() == time.Saturday || f.Weekday() == time.Sunday {
			t.Errorf("weekend date in calendar: %s", dia.Fecha)
		}
		if !reflect.DeepEqual(dia.HorariosDisponibles, horario) {
			t.Errorf("expected full schedule on %s, got %v", dia.Fecha, dia.HorariosDisponibles)
		}
	}

	// Cada día tiene su propia copia
	cal[0].HorariosDisponibles[0] = "mutado"
	if cal[1].HorariosDisponibles[0] != "08:00" || horario[0] != "08:00" {
		t.Error("calendar days share the schedule slice")
	}
}
