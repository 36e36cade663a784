package models

// Disponibilidad es la foto de horarios de un doctor para una fecha.
// HorariosDisponibles = HorarioCompleto - HorasOcupadas, en el orden de HorarioCompleto.
type Disponibilidad struct {
	DoctorID            string   `json:"doctorId"`
	Fecha               string   `json:"fecha"`
	DoctorNombre        string   `json:"doctorNombre,omitempty"`
	Especialidad        string   `json:"especialidad,omitempty"`
	HorarioCompleto     []string `json:"horarioCompleto"`
	HorasOcupadas       []string `json:"horasOcupadas"`
	HorariosDisponibles []string `json:"horariosDisponibles"`
}
