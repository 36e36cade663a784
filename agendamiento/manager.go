package agendamiento

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lizet96/clinica-dental/models"
)

// ErrFormularioNoEncontrado se devuelve cuando el id de sesión no existe o expiró
var ErrFormularioNoEncontrado = errors.New("formulario no encontrado")

// Reservas crea citas en el backend
type Reservas interface {
	CrearCita(ctx context.Context, req models.CitaRequest) (*models.Cita, error)
}

// Doctores busca un doctor por id para conocer su horario
type Doctores interface {
	BuscarDoctor(ctx context.Context, id string) (*models.Doctor, error)
}

// Disponibilidades resuelve los horarios libres de un doctor en una fecha
type Disponibilidades interface {
	Disponibilidad(ctx context.Context, doctor models.Doctor, fecha string) models.Disponibilidad
}

type sesion struct {
	estado      Estado
	actualizado time.Time
}

// Manager guarda los formularios abiertos por el personal, uno por sesión
type Manager struct {
	mu       sync.RWMutex
	sesiones map[string]*sesion

	reservas Reservas
	doctores Doctores
	resolver Disponibilidades
	logger   zerolog.Logger
	ahora    func() time.Time
}

// NewManager crea un manager de formularios vacío
func NewManager(reservas Reservas, doctores Doctores, resolver Disponibilidades, logger zerolog.Logger) *Manager {
	return &Manager{
		sesiones: make(map[string]*sesion),
		reservas: reservas,
		doctores: doctores,
		resolver: resolver,
		logger:   logger,
		ahora:    time.Now,
	}
}

// Nuevo abre un formulario vacío y devuelve su id
func (m *Manager) Nuevo() (string, Estado) {
	id := uuid.New().String()
	estado := Inicial()

	m.mu.Lock()
	m.sesiones[id] = &sesion{estado: estado, actualizado: m.ahora()}
	m.mu.Unlock()

	return id, estado
}

// Obtener devuelve el estado actual del formulario
func (m *Manager) Obtener(id string) (Estado, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sesiones[id]
	if !ok {
		return Estado{}, ErrFormularioNoEncontrado
	}
	return s.estado, nil
}

// Aplicar ejecuta un evento sobre el formulario. Si el evento pide una
// nueva disponibilidad, ésta se resuelve fuera del lock y sólo se aplica
// si ninguna selección posterior la dejó obsoleta.
func (m *Manager) Aplicar(ctx context.Context, id string, ev Evento) (Estado, error) {
	m.mu.Lock()
	s, ok := m.sesiones[id]
	if !ok {
		m.mu.Unlock()
		return Estado{}, ErrFormularioNoEncontrado
	}
	anterior := s.estado
	nuevo, err := Aplicar(s.estado, ev)
	if err != nil {
		m.mu.Unlock()
		return anterior, err
	}
	s.estado = nuevo
	s.actualizado = m.ahora()
	pendiente := nuevo.Fase == FaseCargando && nuevo.Generacion != anterior.Generacion
	m.mu.Unlock()

	if !pendiente {
		return nuevo, nil
	}

	horas := m.resolverHoras(ctx, nuevo.DoctorID, nuevo.Fecha)

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok = m.sesiones[id]
	if !ok {
		return Estado{}, ErrFormularioNoEncontrado
	}
	actualizado, aplicado := s.estado.AplicarDisponibilidad(nuevo.Generacion, horas)
	if !aplicado {
		m.logger.Debug().
			Str("formulario", id).
			Uint64("generacion", nuevo.Generacion).
			Msg("disponibilidad obsoleta descartada")
	}
	s.estado = actualizado
	return s.estado, nil
}

// resolverHoras nunca falla: cualquier error deja la lista vacía
func (m *Manager) resolverHoras(ctx context.Context, doctorID, fecha string) []string {
	doctor, err := m.doctores.BuscarDoctor(ctx, doctorID)
	if err != nil || doctor == nil {
		m.logger.Warn().Err(err).
			Str("doctor_id", doctorID).
			Msg("no se pudo obtener el doctor para calcular disponibilidad")
		return []string{}
	}
	return m.resolver.Disponibilidad(ctx, *doctor, fecha).HorariosDisponibles
}

// Enviar crea la cita con los datos del formulario. Si el backend la acepta
// el formulario vuelve a quedar vacío; si falla, el estado no cambia.
func (m *Manager) Enviar(ctx context.Context, id string) (*models.Cita, Estado, error) {
	m.mu.RLock()
	s, ok := m.sesiones[id]
	if !ok {
		m.mu.RUnlock()
		return nil, Estado{}, ErrFormularioNoEncontrado
	}
	estado := s.estado
	m.mu.RUnlock()

	if !estado.PuedeEnviar() {
		return nil, estado, ErrIncompleto
	}
	req := estado.Solicitud()
	if err := models.Validar(req); err != nil {
		return nil, estado, err
	}

	cita, err := m.reservas.CrearCita(ctx, req)
	if err != nil {
		return nil, estado, fmt.Errorf("crear cita: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok = m.sesiones[id]
	if !ok {
		// La cita ya existe aunque el formulario se haya cerrado
		return cita, Inicial(), nil
	}
	s.estado = s.estado.Limpiar()
	s.actualizado = m.ahora()
	return cita, s.estado, nil
}

// Limpiar vacía el formulario
func (m *Manager) Limpiar(id string) (Estado, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sesiones[id]
	if !ok {
		return Estado{}, ErrFormularioNoEncontrado
	}
	s.estado = s.estado.Limpiar()
	s.actualizado = m.ahora()
	return s.estado, nil
}

// Eliminar cierra el formulario
func (m *Manager) Eliminar(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sesiones[id]; !ok {
		return ErrFormularioNoEncontrado
	}
	delete(m.sesiones, id)
	return nil
}

// Purgar elimina los formularios sin actividad desde hace más de antiguedad
// y devuelve cuántos se eliminaron.
func (m *Manager) Purgar(antiguedad time.Duration) int {
	limite := m.ahora().Add(-antiguedad)

	m.mu.Lock()
	defer m.mu.Unlock()

	eliminados := 0
	for id, s := range m.sesiones {
		if s.actualizado.Before(limite) {
			delete(m.sesiones, id)
			eliminados++
		}
	}
	return eliminados
}

// Total devuelve la cantidad de formularios abiertos
func (m *Manager) Total() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sesiones)
}
