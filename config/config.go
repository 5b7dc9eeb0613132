package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		URI string `yaml:"uri"` // MongoDB
	} `yaml:"database"`

	Postgres struct {
		DSN string `yaml:"dsn"`
	} `yaml:"postgres"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	JWT struct {
		Secret string `yaml:"secret"`
		Expiry int    `yaml:"expiry"` // Token expiry in minutes
	} `yaml:"jwt"`

	// Windows sets the rolling window size per domain. The diet/cardio
	// asymmetry is deliberate per-domain configuration.
	Windows struct {
		Diet     int `yaml:"diet"`
		Cardio   int `yaml:"cardio"`
		Training int `yaml:"training"`
	} `yaml:"windows"`
}

// LoadConfig reads the configuration file. A .env file, when present,
// overlays connection secrets so they stay out of the yaml.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if v := os.Getenv("MONGO_URI"); v != "" {
		cfg.Database.URI = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}

	if cfg.Windows.Diet == 0 {
		cfg.Windows.Diet = 6
	}
	if cfg.Windows.Cardio == 0 {
		cfg.Windows.Cardio = 7
	}
	if cfg.Windows.Training == 0 {
		cfg.Windows.Training = 7
	}
	if cfg.JWT.Expiry == 0 {
		cfg.JWT.Expiry = 60
	}

	return &cfg, nil
}
