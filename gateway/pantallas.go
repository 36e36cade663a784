package gateway

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lizet96/clinica-dental/models"
)

// Agenda son los catálogos que necesita el formulario de agendar cita
type Agenda struct {
	Doctores     []models.Doctor   `json:"doctores"`
	Servicios    []models.Servicio `json:"servicios"`
	Advertencias []string          `json:"advertencias"`
}

// PantallaPacientes son los datos de la pantalla de pacientes
type PantallaPacientes struct {
	Pacientes    []models.Paciente `json:"pacientes"`
	Paises       []models.Pais     `json:"paises"`
	Advertencias []string          `json:"advertencias"`
}

// FuenteAgenda son los listados que alimentan la agenda
type FuenteAgenda interface {
	ListarDoctores(ctx context.Context) ([]models.Doctor, error)
	ListarServicios(ctx context.Context) ([]models.Servicio, error)
}

// FuentePacientes son los listados de la pantalla de pacientes
type FuentePacientes interface {
	ListarPacientes(ctx context.Context) ([]models.Paciente, error)
	ListarPaises(ctx context.Context) ([]models.Pais, error)
}

// CargarAgenda pide doctores y servicios en paralelo. Una sección que falla
// queda vacía con su advertencia y no afecta a la otra.
func CargarAgenda(ctx context.Context, c FuenteAgenda) Agenda {
	agenda := Agenda{Doctores: []models.Doctor{}, Servicios: []models.Servicio{}}
	avisos := make([]string, 2)

	var g errgroup.Group
	g.Go(func() error {
		doctores, err := c.ListarDoctores(ctx)
		if err != nil {
			avisos[0] = "no se pudieron cargar los doctores"
			return nil
		}
		agenda.Doctores = doctores
		return nil
	})
	g.Go(func() error {
		servicios, err := c.ListarServicios(ctx)
		if err != nil {
			avisos[1] = "no se pudieron cargar los servicios"
			return nil
		}
		agenda.Servicios = servicios
		return nil
	})
	_ = g.Wait()

	agenda.Advertencias = compactar(avisos)
	return agenda
}

// CargarPacientes pide pacientes y países en paralelo, con la misma
// degradación por sección que CargarAgenda.
func CargarPacientes(ctx context.Context, c FuentePacientes) PantallaPacientes {
	pantalla := PantallaPacientes{Pacientes: []models.Paciente{}, Paises: []models.Pais{}}
	avisos := make([]string, 2)

	var g errgroup.Group
	g.Go(func() error {
		pacientes, err := c.ListarPacientes(ctx)
		if err != nil {
			avisos[0] = "no se pudieron cargar los pacientes"
			return nil
		}
		pantalla.Pacientes = pacientes
		return nil
	})
	g.Go(func() error {
		paises, err := c.ListarPaises(ctx)
		if err != nil {
			avisos[1] = "no se pudieron cargar los países"
			return nil
		}
		pantalla.Paises = paises
		return nil
	})
	_ = g.Wait()

	pantalla.Advertencias = compactar(avisos)
	return pantalla
}

func compactar(avisos []string) []string {
	out := []string{}
	for _, a := range avisos {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}
