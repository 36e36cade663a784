package horarios

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lizet96/clinica-dental/models"
)

// FuenteOcupacion informa qué horarios de un doctor ya están tomados en una fecha
type FuenteOcupacion interface {
	HorasOcupadas(ctx context.Context, doctorID, fecha string) ([]string, error)
}

// Restar devuelve los horarios de completo que no aparecen en ocupados,
// conservando el orden de completo.
func Restar(completo, ocupados []string) []string {
	tomados := make(map[string]struct{}, len(ocupados))
	for _, h := range ocupados {
		tomados[h] = struct{}{}
	}
	libres := make([]string, 0, len(completo))
	for _, h := range completo {
		if _, ok := tomados[h]; ok {
			continue
		}
		libres = append(libres, h)
	}
	return libres
}

// Resolver calcula la disponibilidad de un doctor para una fecha
type Resolver struct {
	fuente FuenteOcupacion
	logger zerolog.Logger
}

// NewResolver crea un resolver sobre la fuente de ocupación indicada
func NewResolver(fuente FuenteOcupacion, logger zerolog.Logger) *Resolver {
	return &Resolver{fuente: fuente, logger: logger}
}

// Disponibilidad devuelve la foto de horarios del doctor para la fecha.
// Si el doctor no tiene horario, o la ocupación no se puede obtener, la
// lista de disponibles queda vacía: nunca se ofrece un horario sin haber
// verificado que esté libre.
func (r *Resolver) Disponibilidad(ctx context.Context, doctor models.Doctor, fecha string) models.Disponibilidad {
	snapshot := models.Disponibilidad{
		DoctorID:            doctor.ID,
		Fecha:               fecha,
		DoctorNombre:        doctor.Nombre,
		Especialidad:        doctor.Especialidad,
		HorarioCompleto:     append([]string{}, doctor.Horario...),
		HorasOcupadas:       []string{},
		HorariosDisponibles: []string{},
	}
	if len(doctor.Horario) == 0 || fecha == "" {
		return snapshot
	}

	ocupadas, err := r.fuente.HorasOcupadas(ctx, doctor.ID, fecha)
	if err != nil {
		r.logger.Warn().Err(err).
			Str("doctor_id", doctor.ID).
			Str("fecha", fecha).
			Msg("no se pudo obtener la ocupación, sin horarios disponibles")
		return snapshot
	}

	snapshot.HorasOcupadas = soloDelHorario(ocupadas, doctor.Horario)
	snapshot.HorariosDisponibles = Restar(doctor.Horario, snapshot.HorasOcupadas)
	return snapshot
}

// soloDelHorario descarta ocupaciones que no pertenecen al horario del doctor
// y duplicados, para que disponibles + ocupadas == completo.
func soloDelHorario(ocupadas, horario []string) []string {
	valido := make(map[string]bool, len(horario))
	for _, h := range horario {
		valido[h] = true
	}
	visto := make(map[string]bool, len(ocupadas))
	out := []string{}
	for _, h := range ocupadas {
		if !valido[h] || visto[h] {
			continue
		}
		visto[h] = true
		out = append(out, h)
	}
	return out
}
