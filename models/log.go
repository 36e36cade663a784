package models

import (
	"time"
)

// Log representa la tabla logs (bitácora de actividad de la consola)
type Log struct {
	IDLog        int       `json:"id_log" db:"id_log"`
	RequestID    *string   `json:"request_id" db:"request_id"`
	Method       string    `json:"method" db:"method"`
	Path         string    `json:"path" db:"path"`
	StatusCode   int       `json:"status_code" db:"status_code"`
	ResponseTime *int      `json:"response_time" db:"response_time"`
	UserAgent    *string   `json:"user_agent" db:"user_agent"`
	IP           string    `json:"ip" db:"ip"`
	Body         *string   `json:"body" db:"body"`
	Query        *string   `json:"query" db:"query"`
	LogLevel     string    `json:"log_level" db:"log_level"`
	Environment  string    `json:"environment" db:"environment"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
}

// CreateLogRequest es una entrada de bitácora lista para guardarse
type CreateLogRequest struct {
	RequestID    *string
	Method       string
	Path         string
	StatusCode   int
	ResponseTime *int
	UserAgent    *string
	IP           string
	Body         *string
	Query        *string
	LogLevel     string
	Environment  string
	Timestamp    time.Time
}

// LogFiltros son los filtros del listado de la bitácora
type LogFiltros struct {
	LogLevel    string `query:"log_level"`
	Method      string `query:"method"`
	StatusCode  int    `query:"status_code"`
	IP          string `query:"ip"`
	Path        string `query:"path"`
	FechaInicio string `query:"fecha_inicio" validate:"omitempty,fecha"`
	FechaFin    string `query:"fecha_fin" validate:"omitempty,fecha"`
	Page        int    `query:"page"`
	Limit       int    `query:"limit"`
}

// LogEstadisticas resume la bitácora por nivel
type LogEstadisticas struct {
	Total       int            `json:"total"`
	PorNivel    map[string]int `json:"por_nivel"`
	PorMetodo   map[string]int `json:"por_metodo"`
	TiempoMedio float64        `json:"tiempo_medio_ms"`
}

// Constantes para niveles de log
const (
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
	LogLevelDebug   = "debug"
	LogLevelSuccess = "success"
)

// Constantes para ambientes
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
	EnvironmentTesting     = "testing"
)
