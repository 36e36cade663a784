package horarios

import (
	"context"

	"github.com/lizet96/clinica-dental/models"
)

// DisponibilidadAPI es la consulta de disponibilidad del backend
type DisponibilidadAPI interface {
	ObtenerDisponibilidad(ctx context.Context, doctorID, fecha string) (*models.Disponibilidad, error)
}

// CitasAPI es el listado de citas del backend
type CitasAPI interface {
	ListarCitas(ctx context.Context, filtros models.CitaFiltros) ([]models.Cita, error)
}

// FuenteBackend toma la ocupación calculada por el backend
type FuenteBackend struct {
	API DisponibilidadAPI
}

// HorasOcupadas implementa FuenteOcupacion
func (f FuenteBackend) HorasOcupadas(ctx context.Context, doctorID, fecha string) ([]string, error) {
	d, err := f.API.ObtenerDisponibilidad(ctx, doctorID, fecha)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return []string{}, nil
	}
	if len(d.HorasOcupadas) == 0 && len(d.HorarioCompleto) > 0 {
		// Versiones del backend que sólo informan los libres
		return Restar(d.HorarioCompleto, d.HorariosDisponibles), nil
	}
	return d.HorasOcupadas, nil
}

// FuenteCitas deriva la ocupación de las citas no canceladas del doctor en la fecha
type FuenteCitas struct {
	API CitasAPI
}

// HorasOcupadas implementa FuenteOcupacion
func (f FuenteCitas) HorasOcupadas(ctx context.Context, doctorID, fecha string) ([]string, error) {
	citas, err := f.API.ListarCitas(ctx, models.CitaFiltros{Fecha: fecha, DoctorID: doctorID})
	if err != nil {
		return nil, err
	}
	ocupadas := []string{}
	for _, c := range citas {
		if c.Cancelada() || c.DoctorID != doctorID || c.Fecha != fecha {
			continue
		}
		ocupadas = append(ocupadas, recortarHora(c.Hora))
	}
	return ocupadas, nil
}

// recortarHora normaliza "HH:MM:SS" a "HH:MM"
func recortarHora(hora string) string {
	if len(hora) > 5 {
		return hora[:5]
	}
	return hora
}
