package models

import (
	"time"
)

// Paciente representa a un paciente registrado en la clínica
type Paciente struct {
	ID                string    `json:"id"`
	Type              string    `json:"type,omitempty"`
	Nombre            string    `json:"nombre"`
	Apellido          string    `json:"apellido"`
	FechaNacimiento   string    `json:"fechaNacimiento"`
	CorreoElectronico string    `json:"correoElectronico"`
	NumeroTelefono    string    `json:"numeroTelefono"`
	Pais              string    `json:"pais"`
	Ciudad            string    `json:"ciudad"`
	Direccion         string    `json:"direccion"`
	AceptaPoliticas   bool      `json:"aceptaPoliticas"`
	FechaRegistro     time.Time `json:"fechaRegistro"`
	Activo            bool      `json:"activo"`
}

// PacienteRequest representa el formulario de registro o edición de un paciente.
// El consentimiento es obligatorio antes de enviar cualquier cosa al backend.
type PacienteRequest struct {
	Nombre            string `json:"nombre" validate:"required,max=100"`
	Apellido          string `json:"apellido" validate:"required,max=100"`
	FechaNacimiento   string `json:"fechaNacimiento" validate:"omitempty,fecha"`
	CorreoElectronico string `json:"correoElectronico" validate:"omitempty,email"`
	NumeroTelefono    string `json:"numeroTelefono" validate:"max=30"`
	Pais              string `json:"pais" validate:"max=10"`
	Ciudad            string `json:"ciudad" validate:"max=100"`
	Direccion         string `json:"direccion" validate:"max=200"`
	AceptaPoliticas   bool   `json:"aceptaPoliticas" validate:"required"`
}
