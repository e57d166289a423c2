package config

import (
	"os"
	"testing"
)

func clearConfigEnvVars() {
	envVars := []string{
		"PORT", "ENV",
		"ACCIDENTS_PATH", "VEHICLES_PATH", "BATCH_SIZE", "MAPS_DIR",
		"CORS_ORIGINS",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	clearConfigEnvVars()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify defaults
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.Env != "development" {
		t.Errorf("Expected env development, got %s", cfg.Server.Env)
	}
	if cfg.Data.AccidentsPath != "data/UK_Accidents_Fully_Cleaned.csv" {
		t.Errorf("Unexpected accidents path %s", cfg.Data.AccidentsPath)
	}
	if cfg.Data.VehiclesPath != "data/UK_Vehicles_Fully_Cleaned.csv" {
		t.Errorf("Unexpected vehicles path %s", cfg.Data.VehiclesPath)
	}
	if cfg.Data.BatchSize != 500000 {
		t.Errorf("Expected batch size 500000, got %d", cfg.Data.BatchSize)
	}
	if cfg.Data.MapsDir != "maps" {
		t.Errorf("Expected maps dir maps, got %s", cfg.Data.MapsDir)
	}
	if len(cfg.CORS.Origins) != 2 {
		t.Errorf("Expected 2 CORS origins, got %d", len(cfg.CORS.Origins))
	}
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	os.Setenv("PORT", "9090")
	os.Setenv("ENV", "production")
	os.Setenv("ACCIDENTS_PATH", "/srv/data/accidents.csv")
	os.Setenv("VEHICLES_PATH", "/srv/data/vehicles.csv")
	os.Setenv("BATCH_SIZE", "100000")
	os.Setenv("MAPS_DIR", "/srv/maps")
	os.Setenv("CORS_ORIGINS", "http://example.com,https://app.example.com")
	defer clearConfigEnvVars()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Server.Env != "production" {
		t.Errorf("Expected env production, got %s", cfg.Server.Env)
	}
	if cfg.Data.AccidentsPath != "/srv/data/accidents.csv" {
		t.Errorf("Unexpected accidents path %s", cfg.Data.AccidentsPath)
	}
	if cfg.Data.VehiclesPath != "/srv/data/vehicles.csv" {
		t.Errorf("Unexpected vehicles path %s", cfg.Data.VehiclesPath)
	}
	if cfg.Data.BatchSize != 100000 {
		t.Errorf("Expected batch size 100000, got %d", cfg.Data.BatchSize)
	}
	if cfg.Data.MapsDir != "/srv/maps" {
		t.Errorf("Expected maps dir /srv/maps, got %s", cfg.Data.MapsDir)
	}
	if len(cfg.CORS.Origins) != 2 {
		t.Errorf("Expected 2 CORS origins, got %d", len(cfg.CORS.Origins))
	}
	if cfg.CORS.Origins[0] != "http://example.com" {
		t.Errorf("Expected first origin http://example.com, got %s", cfg.CORS.Origins[0])
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", Env: "development"},
		Data: DataConfig{
			AccidentsPath: "data/accidents.csv",
			VehiclesPath:  "data/vehicles.csv",
			BatchSize:     500000,
			MapsDir:       "maps",
		},
		CORS: CORSConfig{Origins: []string{"http://localhost:3000"}},
	}
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }},
		{name: "missing accidents path", mutate: func(c *Config) { c.Data.AccidentsPath = "" }},
		{name: "missing vehicles path", mutate: func(c *Config) { c.Data.VehiclesPath = "" }},
		{name: "missing maps dir", mutate: func(c *Config) { c.Data.MapsDir = "" }},
		{name: "no CORS origins", mutate: func(c *Config) { c.CORS.Origins = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			if err := cfg.Validate(); err == nil {
				t.Errorf("Expected validation error for %s", tt.name)
			}
		})
	}
}

func TestValidate_InvalidBatchSize(t *testing.T) {
	tests := []struct {
		name      string
		batchSize int
		wantErr   bool
	}{
		{name: "negative", batchSize: -1, wantErr: true},
		{name: "zero", batchSize: 0, wantErr: true},
		{name: "one", batchSize: 1, wantErr: false},
		{name: "default", batchSize: 500000, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Data.BatchSize = tt.batchSize

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name    string
		origins string
		want    int
	}{
		{name: "empty string", origins: "", want: 0},
		{name: "single origin", origins: "http://localhost:3000", want: 1},
		{name: "multiple origins", origins: "http://a.com,http://b.com,http://c.com", want: 3},
		{name: "whitespace trimmed", origins: " http://a.com , http://b.com ", want: 2},
		{name: "empty segments dropped", origins: "http://a.com,,http://b.com", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOrigins(tt.origins)
			if len(got) != tt.want {
				t.Errorf("parseOrigins(%q) returned %d origins, want %d", tt.origins, len(got), tt.want)
			}
		})
	}
}
