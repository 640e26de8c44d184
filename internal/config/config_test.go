package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"SERVER_HOST", "SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME", "DB_CONN_MAX_IDLE_TIME",
		"DATASET_SOURCE", "DATASET_PATH", "LOG_LEVEL",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 15s", cfg.Server.ReadTimeout)
	}
	if cfg.Dataset.Source != SourceCSV {
		t.Errorf("Dataset.Source = %q, want %q", cfg.Dataset.Source, SourceCSV)
	}
	if cfg.Dataset.Path != "weather_trends.csv" {
		t.Errorf("Dataset.Path = %q, want weather_trends.csv", cfg.Dataset.Path)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATASET_SOURCE", "postgres")
	t.Setenv("DB_NAME", "climate_archive")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Dataset.Source != SourcePostgres {
		t.Errorf("Dataset.Source = %q, want postgres", cfg.Dataset.Source)
	}
	if cfg.Database.Database != "climate_archive" {
		t.Errorf("Database.Database = %q, want climate_archive", cfg.Database.Database)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
}

func TestLoadConfigBadInt(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "not-a-number")

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() accepted a non-numeric SERVER_PORT")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8080},
			Dataset: DatasetConfig{Source: SourceCSV, Path: "data.csv"},
			Database: DatabaseConfig{
				Host:     "localhost",
				Database: "weather_dashboard",
			},
			Logging: LoggingConfig{Level: "info"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid csv config", mutate: func(*Config) {}},
		{name: "valid postgres config", mutate: func(c *Config) { c.Dataset.Source = SourcePostgres }},
		{name: "port too low", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "port too high", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "unknown source", mutate: func(c *Config) { c.Dataset.Source = "s3" }, wantErr: true},
		{name: "csv without path", mutate: func(c *Config) { c.Dataset.Path = "" }, wantErr: true},
		{name: "postgres without database", mutate: func(c *Config) {
			c.Dataset.Source = SourcePostgres
			c.Database.Database = ""
		}, wantErr: true},
		{name: "unknown log level", mutate: func(c *Config) { c.Logging.Level = "trace" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
