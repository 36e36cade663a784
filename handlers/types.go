package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lizet96/clinica-dental/gateway"
	"github.com/lizet96/clinica-dental/models"
)

type BodyResponse struct {
	IntCode string        `json:"intCode"`
	Data    []interface{} `json:"data"`
}

type StandardResponse struct {
	StatusCode int          `json:"statusCode"`
	Body       BodyResponse `json:"body"`
}

// responder escribe la respuesta estándar de la consola
func responder(c *fiber.Ctx, status int, intCode string, data ...interface{}) error {
	if data == nil {
		data = []interface{}{}
	}
	return c.Status(status).JSON(StandardResponse{
		StatusCode: status,
		Body: BodyResponse{
			IntCode: intCode,
			Data:    data,
		},
	})
}

// fallo escribe una respuesta de error con el mensaje para el usuario
func fallo(c *fiber.Ctx, status int, intCode, mensaje string) error {
	return responder(c, status, intCode, fiber.Map{"error": mensaje})
}

// falloValidacion responde 400 con los campos inválidos
func falloValidacion(c *fiber.Ctx, intCode string, err error) error {
	var verr *models.ErrorValidacion
	if errors.As(err, &verr) {
		return responder(c, fiber.StatusBadRequest, intCode, fiber.Map{
			"error":  "Datos inválidos",
			"campos": verr.Campos,
		})
	}
	return fallo(c, fiber.StatusBadRequest, intCode, err.Error())
}

// falloBackend traduce un error del gateway: 504 si venció el timeout, el
// mismo status si el backend no encontró el recurso o rechazó un conflicto,
// 502 en cualquier otro caso.
func falloBackend(c *fiber.Ctx, intCode, mensaje string, err error) error {
	if gateway.IsTimeout(err) {
		return fallo(c, fiber.StatusGatewayTimeout, intCode, mensaje+": el servidor no respondió a tiempo")
	}
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		switch gwErr.Status {
		case fiber.StatusNotFound, fiber.StatusConflict:
			return responder(c, gwErr.Status, intCode, fiber.Map{"error": mensaje, "detalle": gwErr.Message})
		}
		return responder(c, fiber.StatusBadGateway, intCode, fiber.Map{"error": mensaje, "detalle": gwErr.Message})
	}
	return fallo(c, fiber.StatusBadGateway, intCode, mensaje)
}
