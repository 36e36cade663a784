package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Fuentes válidas de ocupación para el cálculo de disponibilidad
const (
	FuenteDisponibilidadBackend = "backend"
	FuenteDisponibilidadCitas   = "citas"
)

// Fuentes válidas para el cálculo de reportes
const (
	FuenteReporteLocal   = "local"
	FuenteReporteBackend = "backend"
)

// Config agrupa la configuración del proceso. Se resuelve una sola vez al
// arrancar y se pasa explícitamente a quien la necesite.
type Config struct {
	Port               string        `mapstructure:"PORT"`
	Environment        string        `mapstructure:"ENVIRONMENT"`
	APIBaseURL         string        `mapstructure:"API_BASE_URL"`
	APITimeout         time.Duration `mapstructure:"API_TIMEOUT"`
	DatabaseURL        string        `mapstructure:"DATABASE_URL"`
	DBMaxConns         int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns         int32         `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins        string        `mapstructure:"CORS_ORIGINS"`
	RateLimitMax       int           `mapstructure:"RATE_LIMIT_MAX"`
	RateLimitWindow    time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
	AvailabilitySource string        `mapstructure:"AVAILABILITY_SOURCE"`
	ReportSource       string        `mapstructure:"REPORT_SOURCE"`
	ReportSnapshotCron string        `mapstructure:"REPORT_SNAPSHOT_CRON"`
	FormTTL            time.Duration `mapstructure:"FORM_TTL"`
	KafkaBrokers       []string      `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic         string        `mapstructure:"KAFKA_TOPIC"`
}

var claves = []string{
	"PORT", "ENVIRONMENT", "API_BASE_URL", "API_TIMEOUT", "DATABASE_URL",
	"DB_MAX_CONNS", "DB_MIN_CONNS", "CORS_ORIGINS", "RATE_LIMIT_MAX",
	"RATE_LIMIT_WINDOW", "AVAILABILITY_SOURCE", "REPORT_SOURCE",
	"REPORT_SNAPSHOT_CRON", "FORM_TTL", "KAFKA_BROKERS", "KAFKA_TOPIC",
}

// Load lee la configuración desde el entorno (y un .env opcional) aplicando
// los valores por defecto.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("API_TIMEOUT", "10s")
	v.SetDefault("DB_MAX_CONNS", 30)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("AVAILABILITY_SOURCE", FuenteDisponibilidadBackend)
	v.SetDefault("REPORT_SOURCE", FuenteReporteLocal)
	v.SetDefault("REPORT_SNAPSHOT_CRON", "0 23 * * *")
	v.SetDefault("FORM_TTL", "2h")
	v.SetDefault("KAFKA_TOPIC", "clinica.citas")

	for _, clave := range claves {
		_ = v.BindEnv(clave)
	}

	// El .env es opcional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// viper entrega KAFKA_BROKERS como una sola cadena cuando viene del entorno
	if len(cfg.KafkaBrokers) == 1 && strings.Contains(cfg.KafkaBrokers[0], ",") {
		cfg.KafkaBrokers = strings.Split(cfg.KafkaBrokers[0], ",")
	}
	cfg.KafkaBrokers = limpiarLista(cfg.KafkaBrokers)
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate verifica que la configuración permita arrancar el servicio.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.APIBaseURL)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %s", c.APITimeout)
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) cannot exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	switch c.AvailabilitySource {
	case FuenteDisponibilidadBackend, FuenteDisponibilidadCitas:
	default:
		return fmt.Errorf("AVAILABILITY_SOURCE must be %q or %q, got %q",
			FuenteDisponibilidadBackend, FuenteDisponibilidadCitas, c.AvailabilitySource)
	}
	switch c.ReportSource {
	case FuenteReporteLocal, FuenteReporteBackend:
	default:
		return fmt.Errorf("REPORT_SOURCE must be %q or %q, got %q",
			FuenteReporteLocal, FuenteReporteBackend, c.ReportSource)
	}
	if c.ReportSnapshotCron != "" {
		if _, err := cron.ParseStandard(c.ReportSnapshotCron); err != nil {
			return fmt.Errorf("REPORT_SNAPSHOT_CRON is invalid: %w", err)
		}
	}
	if c.FormTTL <= 0 {
		return fmt.Errorf("FORM_TTL must be positive, got %s", c.FormTTL)
	}
	return nil
}

// IsDev indica si el servicio corre en modo desarrollo.
func (c *Config) IsDev() bool {
	return c.Environment == "development"
}

// HasDatabase indica si hay base de datos para bitácora y archivo de reportes.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// HasKafka indica si se publican eventos de citas.
func (c *Config) HasKafka() bool {
	return len(c.KafkaBrokers) > 0
}

func limpiarLista(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
