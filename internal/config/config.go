package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Data   DataConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
	Env  string
}

// DataConfig holds the source file locations and load pipeline tuning.
type DataConfig struct {
	// AccidentsPath and VehiclesPath are the well-known source file
	// locations. Uploaded replacements are written to the same paths.
	AccidentsPath string
	VehiclesPath  string
	// BatchSize bounds rows per read batch, capping peak parse memory.
	BatchSize int
	// MapsDir holds the precomputed static chart and map artifacts
	// produced by the offline batch job.
	MapsDir string
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// Load reads configuration from environment variables.
// It uses viper to read values and provides sensible defaults for development.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults for development
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("ACCIDENTS_PATH", "data/UK_Accidents_Fully_Cleaned.csv")
	v.SetDefault("VEHICLES_PATH", "data/UK_Vehicles_Fully_Cleaned.csv")
	v.SetDefault("BATCH_SIZE", 500000)
	v.SetDefault("MAPS_DIR", "maps")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001")

	// Bind environment variables
	v.AutomaticEnv()

	// Build configuration
	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Env:  v.GetString("ENV"),
		},
		Data: DataConfig{
			AccidentsPath: v.GetString("ACCIDENTS_PATH"),
			VehiclesPath:  v.GetString("VEHICLES_PATH"),
			BatchSize:     v.GetInt("BATCH_SIZE"),
			MapsDir:       v.GetString("MAPS_DIR"),
		},
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Data.AccidentsPath == "" {
		return fmt.Errorf("ACCIDENTS_PATH is required")
	}
	if c.Data.VehiclesPath == "" {
		return fmt.Errorf("VEHICLES_PATH is required")
	}
	if c.Data.BatchSize < 1 {
		return fmt.Errorf("BATCH_SIZE must be at least 1")
	}
	if c.Data.MapsDir == "" {
		return fmt.Errorf("MAPS_DIR is required")
	}

	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}

	return nil
}

// parseOrigins splits a comma-separated string of origins into a slice.
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
