package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"

	"github.com/lizet96/clinica-dental/models"
)

// maxBody es el largo máximo del body guardado en la bitácora
const maxBody = 1000

// Guardador persiste una entrada de la bitácora
type Guardador interface {
	Crear(ctx context.Context, entrada models.CreateLogRequest) error
}

// LoggingConfig configura el registro de peticiones
type LoggingConfig struct {
	Logger      zerolog.Logger
	Guardador   Guardador // nil: sólo se escribe en el log del proceso
	Environment string
}

// LoggingMiddleware registra cada petición en el log del proceso y, si hay
// base de datos, la guarda en la bitácora de forma asíncrona.
func LoggingMiddleware(cfg LoggingConfig) fiber.Handler {
	if cfg.Environment == "" {
		cfg.Environment = models.EnvironmentDevelopment
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Continuar con la petición
		err := c.Next()
		if err != nil {
			// El ErrorHandler de la app todavía no escribió la respuesta
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}

		latencia := time.Since(start)
		entrada := createLogEntry(c, int(latencia.Milliseconds()), cfg.Environment)

		evento := cfg.Logger.WithLevel(zerologLevel(entrada.StatusCode)).
			Str("method", entrada.Method).
			Str("path", entrada.Path).
			Int("status", entrada.StatusCode).
			Dur("latency", latencia).
			Str("ip", entrada.IP)
		if entrada.RequestID != nil {
			evento = evento.Str("request_id", *entrada.RequestID)
		}
		evento.Msg("request")

		if cfg.Guardador != nil {
			go saveLogToDB(cfg.Guardador, entrada, cfg.Logger)
		}
		return err
	}
}

// createLogEntry copia los datos de la petición: el contexto de fiber se
// reutiliza cuando el handler termina.
func createLogEntry(c *fiber.Ctx, responseTime int, environment string) models.CreateLogRequest {
	// IP real del cliente
	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		ip = realIP
	}

	var requestIDPtr *string
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && id != "" {
		id = utils.CopyString(id)
		requestIDPtr = &id
	}

	var userAgentPtr *string
	if userAgent := c.Get(fiber.HeaderUserAgent); userAgent != "" {
		userAgent = utils.CopyString(userAgent)
		userAgentPtr = &userAgent
	}

	// Body sólo para métodos que escriben
	var bodyPtr *string
	if c.Method() == fiber.MethodPost || c.Method() == fiber.MethodPut || c.Method() == fiber.MethodPatch {
		if body := string(c.Body()); body != "" {
			body = filterSensitiveData(body)
			bodyPtr = &body
		}
	}

	var queryPtr *string
	if query := string(c.Request().URI().QueryString()); query != "" {
		queryPtr = &query
	}

	return models.CreateLogRequest{
		RequestID:    requestIDPtr,
		Method:       utils.CopyString(c.Method()),
		Path:         utils.CopyString(c.Path()),
		StatusCode:   c.Response().StatusCode(),
		ResponseTime: &responseTime,
		UserAgent:    userAgentPtr,
		IP:           utils.CopyString(ip),
		Body:         bodyPtr,
		Query:        queryPtr,
		LogLevel:     determineLogLevel(c.Response().StatusCode()),
		Environment:  environment,
		Timestamp:    time.Now(),
	}
}

// Datos personales de pacientes que nunca llegan a la bitácora
var sensitiveFields = []string{
	"pacienteNombre", "apellido", "fechaNacimiento", "correoElectronico",
	"numeroTelefono", "direccion", "email", "telefono", "notas",
}

// Eventos del formulario de agenda cuyo valor es un dato personal
var eventosSensibles = map[string]bool{"paciente": true, "notas": true}

// filterSensitiveData enmascara los datos personales del body
func filterSensitiveData(body string) string {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		// No es JSON: sólo se trunca
		return truncar(body)
	}

	for _, field := range sensitiveFields {
		if _, exists := data[field]; exists {
			data[field] = "[FILTERED]"
		}
	}
	if tipo, ok := data["tipo"].(string); ok && eventosSensibles[tipo] {
		if _, exists := data["valor"]; exists {
			data["valor"] = "[FILTERED]"
		}
	}

	filtered, _ := json.Marshal(data)
	return truncar(string(filtered))
}

func truncar(s string) string {
	if len(s) > maxBody {
		return s[:maxBody] + "...[truncated]"
	}
	return s
}

// determineLogLevel determina el nivel de la bitácora según el status code
func determineLogLevel(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return models.LogLevelSuccess
	case statusCode >= 300 && statusCode < 400:
		return models.LogLevelInfo
	case statusCode >= 400 && statusCode < 500:
		return models.LogLevelWarning
	case statusCode >= 500:
		return models.LogLevelError
	default:
		return models.LogLevelInfo
	}
}

func zerologLevel(statusCode int) zerolog.Level {
	switch {
	case statusCode >= 500:
		return zerolog.ErrorLevel
	case statusCode >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// saveLogToDB guarda la entrada sin bloquear la respuesta
func saveLogToDB(g Guardador, entrada models.CreateLogRequest, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := g.Crear(ctx, entrada); err != nil {
		logger.Error().Err(err).Str("path", entrada.Path).Msg("error guardando log en base de datos")
	}
}
