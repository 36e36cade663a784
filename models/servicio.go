package models

import (
	"time"
)

// Servicio representa un tratamiento dental ofrecido por la clínica
type Servicio struct {
	ID           string    `json:"id"`
	Type         string    `json:"type,omitempty"`
	Nombre       string    `json:"nombre"`
	Duracion     int       `json:"duracion"`
	Precio       float64   `json:"precio"`
	Especialidad string    `json:"especialidad,omitempty"`
	Activo       bool      `json:"activo"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ServicioRequest representa el formulario de alta de un servicio
type ServicioRequest struct {
	Nombre   string  `json:"nombre" validate:"required,max=100"`
	Duracion int     `json:"duracion" validate:"gt=0"`
	Precio   float64 `json:"precio" validate:"gte=0"`
}
