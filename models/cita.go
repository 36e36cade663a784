package models

import (
	"time"
)

// Estados del ciclo de vida de una cita
const (
	EstadoPendiente  = "pendiente"
	EstadoConfirmada = "confirmada"
	EstadoCompletada = "completada"
	EstadoAtendida   = "atendida"
	EstadoCancelada  = "cancelada"
)

// MaxNotas es el largo máximo de las notas de una cita
const MaxNotas = 500

// Cita representa una cita agendada en el backend
type Cita struct {
	ID                string    `json:"id"`
	Type              string    `json:"type,omitempty"`
	PacienteNombre    string    `json:"pacienteNombre"`
	DoctorID          string    `json:"doctorId"`
	ServicioID        string    `json:"servicioId"`
	DoctorNombre      string    `json:"doctorNombre"`
	ServicioNombre    string    `json:"servicioNombre"`
	Especialidad      string    `json:"especialidad"`
	Fecha             string    `json:"fecha"`
	Hora              string    `json:"hora"`
	Estado            string    `json:"estado"`
	Notas             string    `json:"notas,omitempty"`
	MotivoCancelacion string    `json:"motivoCancelacion,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Atendida indica si la cita cuenta como atendida en los reportes
func (c Cita) Atendida() bool {
	return c.Estado == EstadoCompletada || c.Estado == EstadoAtendida
}

// Cancelada indica si la cita fue cancelada
func (c Cita) Cancelada() bool {
	return c.Estado == EstadoCancelada
}

// CitaRequest representa una solicitud para crear una cita
type CitaRequest struct {
	PacienteNombre string `json:"pacienteNombre" validate:"required,max=200"`
	DoctorID       string `json:"doctorId" validate:"required"`
	ServicioID     string `json:"servicioId" validate:"required"`
	Fecha          string `json:"fecha" validate:"required,fecha"`
	Hora           string `json:"hora" validate:"required,hhmm"`
	Notas          string `json:"notas,omitempty" validate:"max=500"`
}

// EstadoCitaRequest representa un cambio de estado solicitado por el personal
type EstadoCitaRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente confirmada completada cancelada"`
	Motivo string `json:"motivo,omitempty" validate:"max=200"`
}

// CitaFiltros son los filtros opcionales del listado de citas
type CitaFiltros struct {
	Fecha    string `query:"fecha" validate:"omitempty,fecha"`
	DoctorID string `query:"doctorId"`
}

// MotivosCancelacion son los motivos predefinidos que ofrece la consola
var MotivosCancelacion = []string{
	"Solicitud del paciente",
	"Emergencia médica",
	"Doctor no disponible",
	"Reprogramación",
	"Otro",
}
