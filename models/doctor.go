package models

import (
	"time"
)

// Doctor representa a un odontólogo registrado en el backend de la clínica
type Doctor struct {
	ID            string    `json:"id"`
	Type          string    `json:"type,omitempty"`
	Nombre        string    `json:"nombre"`
	Especialidad  string    `json:"especialidad"`
	Telefono      string    `json:"telefono"`
	Email         string    `json:"email"`
	HorarioInicio string    `json:"horarioInicio"`
	HorarioFin    string    `json:"horarioFin"`
	Horario       []string  `json:"horario"`
	Activo        bool      `json:"activo"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DoctorRequest representa el formulario de alta o edición de un doctor
type DoctorRequest struct {
	Nombre        string `json:"nombre" validate:"required,max=100"`
	Especialidad  string `json:"especialidad" validate:"required,max=100"`
	Telefono      string `json:"telefono" validate:"max=30"`
	Email         string `json:"email" validate:"omitempty,email"`
	HorarioInicio string `json:"horarioInicio" validate:"required,hhmm"`
	HorarioFin    string `json:"horarioFin" validate:"required,hhmm"`
}

// DoctorUpdate representa una edición parcial; los campos nil no se envían
type DoctorUpdate struct {
	Nombre        *string `json:"nombre,omitempty" validate:"omitempty,max=100"`
	Especialidad  *string `json:"especialidad,omitempty" validate:"omitempty,max=100"`
	Telefono      *string `json:"telefono,omitempty" validate:"omitempty,max=30"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	HorarioInicio *string `json:"horarioInicio,omitempty" validate:"omitempty,hhmm"`
	HorarioFin    *string `json:"horarioFin,omitempty" validate:"omitempty,hhmm"`
	Activo        *bool   `json:"activo,omitempty"`
}

// DisponibilidadDia es una entrada del calendario inicial de un doctor
type DisponibilidadDia struct {
	Fecha               string   `json:"fecha"`
	HorariosDisponibles []string `json:"horariosDisponibles"`
}
