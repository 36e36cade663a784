package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/lizet96/clinica-dental/horarios"
	"github.com/lizet96/clinica-dental/models"
)

type doctorAlta struct {
	models.DoctorRequest
	Horario          []string                   `json:"horario"`
	Disponibilidades []models.DisponibilidadDia `json:"disponibilidades"`
	Type             string                     `json:"type"`
	Activo           bool                       `json:"activo"`
}

type doctorEdicion struct {
	models.DoctorUpdate
	Horario []string `json:"horario,omitempty"`
}

// ListarDoctores devuelve todos los doctores
func (c *Client) ListarDoctores(ctx context.Context) ([]models.Doctor, error) {
	var doctores []models.Doctor
	if err := c.hacer(ctx, "listar doctores", http.MethodGet, "/doctors", nil, nil, &doctores); err != nil {
		return nil, err
	}
	if doctores == nil {
		doctores = []models.Doctor{}
	}
	return doctores, nil
}

// BuscarDoctor devuelve el doctor con el id indicado. El backend no expone
// consulta individual, así que se busca en el listado.
func (c *Client) BuscarDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	doctores, err := c.ListarDoctores(ctx)
	if err != nil {
		return nil, err
	}
	for i := range doctores {
		if doctores[i].ID == id {
			return &doctores[i], nil
		}
	}
	return nil, &Error{Op: "buscar doctor", Status: http.StatusNotFound, Message: "doctor no encontrado"}
}

// CrearDoctor registra un doctor con su horario y un calendario de 30 días hábiles
func (c *Client) CrearDoctor(ctx context.Context, req models.DoctorRequest) (*models.Doctor, error) {
	horario := horarios.GenerarHorario(req.HorarioInicio, req.HorarioFin)
	alta := doctorAlta{
		DoctorRequest:    req,
		Horario:          horario,
		Disponibilidades: horarios.CalendarioInicial(c.ahora(), horarios.DiasCalendario, horario),
		Type:             "doctor",
		Activo:           true,
	}

	var doctor models.Doctor
	if err := c.hacer(ctx, "crear doctor", http.MethodPost, "/doctors", nil, alta, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// ActualizarDoctor envía una edición parcial. Si cambia alguna de las horas
// el horario se recalcula; la hora que falta se toma del doctor guardado.
func (c *Client) ActualizarDoctor(ctx context.Context, id string, upd models.DoctorUpdate) (*models.Doctor, error) {
	edicion := doctorEdicion{DoctorUpdate: upd}
	if upd.HorarioInicio != nil || upd.HorarioFin != nil {
		if upd.HorarioInicio == nil || upd.HorarioFin == nil {
			actual, err := c.BuscarDoctor(ctx, id)
			if err != nil {
				return nil, err
			}
			if upd.HorarioInicio == nil {
				edicion.HorarioInicio = &actual.HorarioInicio
			} else {
				edicion.HorarioFin = &actual.HorarioFin
			}
		}
		edicion.Horario = horarios.GenerarHorario(*edicion.HorarioInicio, *edicion.HorarioFin)
		if len(edicion.Horario) == 0 {
			return nil, &Error{Op: "actualizar doctor", Status: http.StatusBadRequest, Message: "la hora de inicio debe ser anterior a la hora de fin"}
		}
	}

	var doctor models.Doctor
	path := "/doctors/" + url.PathEscape(id)
	if err := c.hacer(ctx, "actualizar doctor", http.MethodPut, path, nil, edicion, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// EliminarDoctor borra un doctor
func (c *Client) EliminarDoctor(ctx context.Context, id string) error {
	return c.hacer(ctx, "eliminar doctor", http.MethodDelete, "/doctors/"+url.PathEscape(id), nil, nil, nil)
}
