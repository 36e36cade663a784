// Package especialidades clasifica los servicios dentales en una
// especialidad a partir de palabras clave de su nombre.
package especialidades

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// General es la especialidad asignada cuando ninguna regla coincide
const General = "Odontología General"

// Regla asocia palabras clave con una especialidad
type Regla struct {
	Especialidad string
	Claves       []string
}

// Reglas es la tabla de clasificación. Se evalúa en orden y gana la primera
// regla con alguna clave contenida en el nombre del servicio.
var Reglas = []Regla{
	{Especialidad: "Higiene Dental", Claves: []string{"limpieza", "profilaxis"}},
	{Especialidad: "Cirugía Oral", Claves: []string{"extracción", "cirugía"}},
	{Especialidad: "Endodoncia", Claves: []string{"endodoncia", "conducto"}},
	{Especialidad: "Estética Dental", Claves: []string{"blanqueamiento", "estética"}},
	{Especialidad: "Ortodoncia", Claves: []string{"ortodoncia", "brackets", "brakers"}},
	{Especialidad: "Implantología", Claves: []string{"implante", "prótesis"}},
	{Especialidad: "Periodoncia", Claves: []string{"periodoncia", "encías"}},
}

// Clasificar devuelve la especialidad de un servicio según su nombre.
// La comparación ignora mayúsculas y tildes.
func Clasificar(nombre string) string {
	texto := normalizar(nombre)
	for _, regla := range Reglas {
		for _, clave := range regla.Claves {
			if strings.Contains(texto, normalizar(clave)) {
				return regla.Especialidad
			}
		}
	}
	return General
}

// Todas devuelve las especialidades posibles, en el orden de la tabla y
// con General al final.
func Todas() []string {
	out := make([]string, 0, len(Reglas)+1)
	for _, regla := range Reglas {
		out = append(out, regla.Especialidad)
	}
	return append(out, General)
}

func normalizar(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	sinTildes, _, err := transform.String(t, s)
	if err != nil {
		sinTildes = s
	}
	return strings.ToLower(sinTildes)
}
