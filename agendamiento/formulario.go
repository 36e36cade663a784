// Package agendamiento modela el formulario de agendar cita como una
// máquina de estados: paciente → doctor → fecha → disponibilidad →
// servicio → hora → listo para enviar.
package agendamiento

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/lizet96/clinica-dental/models"
)

// Fase de la lista de horarios del formulario
type Fase string

const (
	// FaseSinSeleccion: falta doctor o fecha, no se muestran horarios
	FaseSinSeleccion Fase = "sin-seleccion"
	// FaseCargando: doctor y fecha elegidos, disponibilidad en curso
	FaseCargando Fase = "cargando"
	// FaseLista: hay horarios para elegir
	FaseLista Fase = "lista"
	// FaseSinHorarios: la disponibilidad se resolvió y no hay horarios
	FaseSinHorarios Fase = "sin-horarios"
)

// TipoEvento identifica un cambio del usuario sobre el formulario
type TipoEvento string

const (
	EventoPaciente TipoEvento = "paciente"
	EventoDoctor   TipoEvento = "doctor"
	EventoFecha    TipoEvento = "fecha"
	EventoServicio TipoEvento = "servicio"
	EventoHora     TipoEvento = "hora"
	EventoNotas    TipoEvento = "notas"
	EventoLimpiar  TipoEvento = "limpiar"
)

// Evento es una acción del usuario sobre un campo del formulario
type Evento struct {
	Tipo  TipoEvento `json:"tipo" validate:"required"`
	Valor string     `json:"valor"`
}

var (
	ErrEventoDesconocido = errors.New("evento de formulario desconocido")
	ErrHoraSinSeleccion  = errors.New("seleccione doctor y fecha antes de elegir un horario")
	ErrHoraNoDisponible  = errors.New("el horario elegido no está disponible")
	ErrIncompleto        = errors.New("complete paciente, doctor, servicio, fecha y horario")
)

// Estado es el valor completo del formulario. Las transiciones nunca lo
// modifican en sitio: Aplicar devuelve un estado nuevo.
type Estado struct {
	PacienteNombre string   `json:"pacienteNombre"`
	DoctorID       string   `json:"doctorId"`
	ServicioID     string   `json:"servicioId"`
	Fecha          string   `json:"fecha"`
	Hora           string   `json:"hora"`
	Notas          string   `json:"notas"`
	Fase           Fase     `json:"fase"`
	Horarios       []string `json:"horarios"`
	Generacion     uint64   `json:"-"` // interna, no se publica
}

// Inicial devuelve el formulario vacío
func Inicial() Estado {
	return Estado{Fase: FaseSinSeleccion, Horarios: []string{}}
}

// Aplicar ejecuta una transición. Ante un evento inválido devuelve el
// estado sin cambios junto con el error.
func Aplicar(e Estado, ev Evento) (Estado, error) {
	switch ev.Tipo {
	case EventoPaciente:
		e.PacienteNombre = ev.Valor
	case EventoDoctor:
		// La hora depende del doctor
		e.DoctorID = ev.Valor
		e.Hora = ""
		e = e.reiniciarDisponibilidad()
	case EventoFecha:
		// La hora depende de la fecha
		e.Fecha = ev.Valor
		e.Hora = ""
		e = e.reiniciarDisponibilidad()
	case EventoServicio:
		e.ServicioID = ev.Valor
	case EventoHora:
		if ev.Valor == "" {
			e.Hora = ""
			return e, nil
		}
		if !e.MostrarHoras() {
			return e, ErrHoraSinSeleccion
		}
		if !contiene(e.Horarios, ev.Valor) {
			return e, ErrHoraNoDisponible
		}
		e.Hora = ev.Valor
	case EventoNotas:
		e.Notas = truncar(ev.Valor, models.MaxNotas)
	case EventoLimpiar:
		return e.Limpiar(), nil
	default:
		return e, ErrEventoDesconocido
	}
	return e, nil
}

// Limpiar vuelve al formulario vacío. La generación se conserva para que
// una disponibilidad pedida antes de limpiar nunca se aplique después.
func (e Estado) Limpiar() Estado {
	limpio := Inicial()
	limpio.Generacion = e.Generacion
	return limpio
}

// AplicarDisponibilidad reemplaza la lista de horarios si gen corresponde a
// la última selección de doctor y fecha. Devuelve false si el resultado
// quedó obsoleto y se descartó.
func (e Estado) AplicarDisponibilidad(gen uint64, horas []string) (Estado, bool) {
	if e.Fase != FaseCargando || gen != e.Generacion {
		return e, false
	}
	e.Horarios = append([]string{}, horas...)
	if len(e.Horarios) == 0 {
		e.Fase = FaseSinHorarios
	} else {
		e.Fase = FaseLista
	}
	return e, true
}

// MostrarHoras indica si el selector de horarios forma parte del formulario
func (e Estado) MostrarHoras() bool {
	return e.DoctorID != "" && e.Fecha != ""
}

// PuedeEnviar indica si el botón de agendar está habilitado
func (e Estado) PuedeEnviar() bool {
	return strings.TrimSpace(e.PacienteNombre) != "" &&
		e.DoctorID != "" &&
		e.ServicioID != "" &&
		e.Fecha != "" &&
		e.Hora != ""
}

// NotasRestantes es el contador de caracteres que muestra la consola
func (e Estado) NotasRestantes() int {
	return models.MaxNotas - utf8.RuneCountInString(e.Notas)
}

// Solicitud arma la petición de creación de cita con los valores actuales
func (e Estado) Solicitud() models.CitaRequest {
	return models.CitaRequest{
		PacienteNombre: strings.TrimSpace(e.PacienteNombre),
		DoctorID:       e.DoctorID,
		ServicioID:     e.ServicioID,
		Fecha:          e.Fecha,
		Hora:           e.Hora,
		Notas:          strings.TrimSpace(e.Notas),
	}
}

func (e Estado) reiniciarDisponibilidad() Estado {
	e.Horarios = []string{}
	e.Generacion++
	if e.MostrarHoras() {
		e.Fase = FaseCargando
	} else {
		e.Fase = FaseSinSeleccion
	}
	return e
}

func contiene(items []string, v string) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}

func truncar(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
