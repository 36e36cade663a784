// Package reportes agrega las citas del backend en las estadísticas del
// dashboard: totales, desglose por servicio y evolución mensual.
package reportes

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/lizet96/clinica-dental/especialidades"
	"github.com/lizet96/clinica-dental/horarios"
	"github.com/lizet96/clinica-dental/models"
)

const layoutFecha = "2006-01-02"

var meses = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Calcular aplica los filtros y agrega las citas restantes
func Calcular(citas []models.Cita, servicios []models.Servicio, filtros models.ReporteFiltros) models.Reporte {
	porID := make(map[string]models.Servicio, len(servicios))
	for _, s := range servicios {
		porID[s.ID] = s
	}

	filtradas := Filtrar(citas, porID, filtros)
	return models.Reporte{
		Citas:     estadisticasCitas(filtradas),
		Servicios: estadisticasServicios(filtradas, porID),
		Mensuales: estadisticasMensuales(filtradas, porID),
	}
}

// Filtrar devuelve las citas que cumplen todos los filtros no vacíos
func Filtrar(citas []models.Cita, servicios map[string]models.Servicio, f models.ReporteFiltros) []models.Cita {
	out := make([]models.Cita, 0, len(citas))
	for _, c := range citas {
		if f.Sucursal != "" && f.Sucursal != models.SucursalPrincipal {
			// Todas las citas pertenecen a la sede principal
			continue
		}
		if f.TipoServicio != "" {
			s, ok := servicios[c.ServicioID]
			if !ok || s.Nombre != f.TipoServicio {
				continue
			}
		}
		if f.PublicoObjetivo != "" && !enHorarioDePublico(c.Hora, f.PublicoObjetivo) {
			continue
		}
		if f.FechaInicio != "" || f.FechaFin != "" {
			fecha, ok := fechaCita(c.Fecha)
			if !ok {
				continue
			}
			if f.FechaInicio != "" && fecha < f.FechaInicio {
				continue
			}
			if f.FechaFin != "" && fecha > f.FechaFin {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// enHorarioDePublico aproxima el público por la hora de la cita:
// adultos de 09 a 17 h, niños de 15 a 18 h, ambos inclusive.
func enHorarioDePublico(hora, publico string) bool {
	h, ok := horaDelDia(hora)
	if !ok {
		return false
	}
	switch publico {
	case models.PublicoAdultos:
		return h >= 9 && h <= 17
	case models.PublicoNinos:
		return h >= 15 && h <= 18
	default:
		return true
	}
}

// horaDelDia acepta "H:MM", "HH:MM" y "HH:MM:SS"
func horaDelDia(hora string) (int, bool) {
	if partes := strings.Split(hora, ":"); len(partes) == 3 {
		hora = partes[0] + ":" + partes[1]
	}
	m, err := horarios.ParseHora(hora)
	if err != nil {
		return 0, false
	}
	return m / 60, true
}

// fechaCita normaliza la fecha de la cita a YYYY-MM-DD
func fechaCita(fecha string) (string, bool) {
	if len(fecha) < len(layoutFecha) {
		return "", false
	}
	fecha = fecha[:len(layoutFecha)]
	if _, err := time.Parse(layoutFecha, fecha); err != nil {
		return "", false
	}
	return fecha, true
}

func estadisticasCitas(citas []models.Cita) models.EstadisticasCitas {
	var e models.EstadisticasCitas
	for _, c := range citas {
		switch {
		case c.Atendida():
			e.Atendidas++
		case c.Cancelada():
			e.Canceladas++
		}
	}
	e.Total = len(citas)
	if e.Total > 0 {
		e.PorcentajeAtendidas = int(math.Round(float64(e.Atendidas) / float64(e.Total) * 100))
	}
	return e
}

func estadisticasServicios(citas []models.Cita, servicios map[string]models.Servicio) []models.EstadisticasServicio {
	var orden []string
	porNombre := make(map[string]*models.EstadisticasServicio)
	for _, c := range citas {
		if !c.Atendida() {
			continue
		}
		s, ok := servicios[c.ServicioID]
		if !ok {
			continue
		}
		e, ok := porNombre[s.Nombre]
		if !ok {
			especialidad := s.Especialidad
			if especialidad == "" {
				especialidad = especialidades.Clasificar(s.Nombre)
			}
			e = &models.EstadisticasServicio{Servicio: s.Nombre, Especializacion: especialidad}
			porNombre[s.Nombre] = e
			orden = append(orden, s.Nombre)
		}
		e.Cantidad++
		e.Ingresos += s.Precio
	}

	out := make([]models.EstadisticasServicio, 0, len(orden))
	for _, nombre := range orden {
		out = append(out, *porNombre[nombre])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Cantidad > out[j].Cantidad
	})
	return out
}

func estadisticasMensuales(citas []models.Cita, servicios map[string]models.Servicio) []models.EstadisticasMensuales {
	porMes := make(map[string]*models.EstadisticasMensuales)
	for _, c := range citas {
		fecha, ok := fechaCita(c.Fecha)
		if !ok {
			continue
		}
		clave := fecha[:7]
		e, ok := porMes[clave]
		if !ok {
			e = &models.EstadisticasMensuales{Clave: clave, Mes: NombreMes(clave)}
			porMes[clave] = e
		}
		switch {
		case c.Atendida():
			e.Atendidas++
			// Un servicio desconocido no suma ingresos
			e.Ingresos += servicios[c.ServicioID].Precio
		case c.Cancelada():
			e.Canceladas++
		}
	}

	out := make([]models.EstadisticasMensuales, 0, len(porMes))
	for _, e := range porMes {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Clave < out[j].Clave
	})
	return out
}

// NombreMes convierte "2025-05" en "mayo de 2025"
func NombreMes(clave string) string {
	t, err := time.Parse("2006-01", clave)
	if err != nil {
		return clave
	}
	return fmt.Sprintf("%s de %d", meses[t.Month()-1], t.Year())
}

// NombreArchivo es el nombre de descarga del reporte exportado
func NombreArchivo(ahora time.Time) string {
	return "reporte-clinica-" + ahora.Format(layoutFecha) + ".json"
}

// Exportar arma la foto descargable del reporte en JSON indentado
func Exportar(reporte models.Reporte, filtros models.ReporteFiltros, ahora time.Time) (models.ReporteSnapshot, []byte, error) {
	snapshot := models.ReporteSnapshot{
		Filtros:         filtros,
		Estadisticas:    reporte,
		FechaGeneracion: ahora.UTC(),
	}
	contenido, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return snapshot, nil, fmt.Errorf("serializar reporte: %w", err)
	}
	return snapshot, contenido, nil
}

// NuevaExportacion arma el registro archivable de un reporte exportado
func NuevaExportacion(snapshot models.ReporteSnapshot, contenido []byte, origen string) models.ReporteExportado {
	return models.ReporteExportado{
		NombreArchivo:   NombreArchivo(snapshot.FechaGeneracion),
		Origen:          origen,
		Filtros:         snapshot.Filtros,
		Contenido:       json.RawMessage(contenido),
		FechaGeneracion: snapshot.FechaGeneracion,
	}
}
