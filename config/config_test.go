package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:               "3000",
		Environment:        "development",
		APIBaseURL:         "https://clinica.example.com/api",
		APITimeout:         10 * time.Second,
		DBMaxConns:         30,
		DBMinConns:         5,
		AvailabilitySource: FuenteDisponibilidadBackend,
		ReportSource:       FuenteReporteLocal,
		ReportSnapshotCron: "0 23 * * *",
		FormTTL:            2 * time.Hour,
	}
}

func TestLoad_RequiresAPIBaseURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when API_BASE_URL is missing")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://clinica.example.com/api/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIBaseURL != "https://clinica.example.com/api" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.APIBaseURL)
	}
	if cfg.Port != "3000" {
		t.Errorf("expected default port 3000, got %s", cfg.Port)
	}
	if cfg.APITimeout != 10*time.Second {
		t.Errorf("expected default timeout 10s, got %s", cfg.APITimeout)
	}
	if cfg.DBMaxConns != 30 || cfg.DBMinConns != 5 {
		t.Errorf("unexpected pool defaults: %d/%d", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.AvailabilitySource != FuenteDisponibilidadBackend {
		t.Errorf("expected backend availability by default, got %s", cfg.AvailabilitySource)
	}
	if cfg.HasDatabase() {
		t.Error("expected no database by default")
	}
	if cfg.HasKafka() {
		t.Error("expected kafka disabled by default")
	}
}

func TestLoad_KafkaBrokersFromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://clinica.example.com/api")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Errorf("unexpected brokers: %v", cfg.KafkaBrokers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"relative url", func(c *Config) { c.APIBaseURL = "/api" }, true},
		{"zero timeout", func(c *Config) { c.APITimeout = 0 }, true},
		{"min above max", func(c *Config) { c.DBMinConns = 40 }, true},
		{"unknown availability source", func(c *Config) { c.AvailabilitySource = "estatico" }, true},
		{"citas availability source", func(c *Config) { c.AvailabilitySource = FuenteDisponibilidadCitas }, false},
		{"unknown report source", func(c *Config) { c.ReportSource = "excel" }, true},
		{"bad cron", func(c *Config) { c.ReportSnapshotCron = "cada dia" }, true},
		{"empty cron disables snapshots", func(c *Config) { c.ReportSnapshotCron = "" }, false},
		{"zero form ttl", func(c *Config) { c.FormTTL = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Environment: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}
	c.Environment = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}
