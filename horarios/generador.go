// Package horarios genera los horarios de atención de los doctores y
// resuelve qué horarios quedan libres para una fecha.
package horarios

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lizet96/clinica-dental/models"
)

// Intervalo es la granularidad de los horarios reservables
const Intervalo = 30

// DiasCalendario es el horizonte del calendario inicial de un doctor
const DiasCalendario = 30

// GenerarHorario devuelve los inicios de turno entre inicio (incluido) y fin
// (excluido), cada Intervalo minutos. Una entrada mal formada o un rango
// vacío produce una lista vacía; validar el rango es tarea del llamador.
func GenerarHorario(inicio, fin string) []string {
	desde, err := ParseHora(inicio)
	if err != nil {
		return []string{}
	}
	hasta, err := ParseHora(fin)
	if err != nil {
		return []string{}
	}

	horario := []string{}
	for minutos := desde; minutos < hasta; minutos += Intervalo {
		horario = append(horario, FormatearHora(minutos))
	}
	return horario
}

// ParseHora convierte una etiqueta "HH:MM" en minutos desde la medianoche
func ParseHora(hora string) (int, error) {
	partes := strings.Split(strings.TrimSpace(hora), ":")
	if len(partes) != 2 {
		return 0, fmt.Errorf("hora inválida %q", hora)
	}
	h, err := strconv.Atoi(partes[0])
	if err != nil || h < 0 || h > 24 {
		return 0, fmt.Errorf("hora inválida %q", hora)
	}
	m, err := strconv.Atoi(partes[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("hora inválida %q", hora)
	}
	if h == 24 && m != 0 {
		return 0, fmt.Errorf("hora inválida %q", hora)
	}
	return h*60 + m, nil
}

// FormatearHora convierte minutos desde la medianoche en "HH:MM"
func FormatearHora(minutos int) string {
	return fmt.Sprintf("%02d:%02d", minutos/60, minutos%60)
}

// Alineado indica si la etiqueta cae en un múltiplo del intervalo
// contado desde el inicio de la jornada.
func Alineado(hora, inicio string) bool {
	h, err := ParseHora(hora)
	if err != nil {
		return false
	}
	i, err := ParseHora(inicio)
	if err != nil {
		return false
	}
	return h >= i && (h-i)%Intervalo == 0
}

// CalendarioInicial arma la disponibilidad de los próximos días hábiles
// (lunes a viernes) a partir de desde, con el horario completo en cada día.
func CalendarioInicial(desde time.Time, dias int, horario []string) []models.DisponibilidadDia {
	calendario := []models.DisponibilidadDia{}
	for i := 0; i < dias; i++ {
		fecha := desde.AddDate(0, 0, i)
		if fecha.Weekday() == time.Saturday || fecha.Weekday() == time.Sunday {
			continue
		}
		horas := make([]string, len(horario))
		copy(horas, horario)
		calendario = append(calendario, models.DisponibilidadDia{
			Fecha:               fecha.Format("2006-01-02"),
			HorariosDisponibles: horas,
		})
	}
	return calendario
}
