package models

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validador devuelve la instancia compartida del validador con las reglas
// propias de la clínica registradas (hhmm, fecha).
func Validador() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			_, err := time.Parse("15:04", fl.Field().String())
			return err == nil
		})
		_ = validate.RegisterValidation("fecha", func(fl validator.FieldLevel) bool {
			_, err := time.Parse("2006-01-02", fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// Validar verifica las etiquetas validate de un formulario y devuelve un
// error legible con los campos inválidos.
func Validar(v interface{}) error {
	err := Validador().Struct(v)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	campos := make([]string, 0, len(errs))
	for _, fe := range errs {
		campos = append(campos, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return &ErrorValidacion{Campos: campos}
}

// ErrorValidacion indica que un formulario no pasó la validación local
type ErrorValidacion struct {
	Campos []string
}

func (e *ErrorValidacion) Error() string {
	return "datos inválidos: " + strings.Join(e.Campos, ", ")
}
