package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings, parsed from environment variables.
type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST,required"`
	DBPort     string `env:"DB_PORT,required"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME,required"`

	JWTSecretKey       string `env:"JWT_SECRET_KEY,required"`
	JWTExpirationHours int64  `env:"JWT_EXPIRATION_HOURS" envDefault:"24"`

	// AdminPhone logs in as a synthetic administrator with no password
	// check. Carried over from the legacy app; set empty to disable.
	AdminPhone string `env:"ADMIN_PHONE" envDefault:"0781285431"`

	// DeliveryFee is added to every order total, in piasters.
	DeliveryFee int64 `env:"DELIVERY_FEE" envDefault:"300"`

	GeminiAPIKey  string `env:"GEMINI_API_KEY,required"`
	GreetingModel string `env:"GEMINI_GREETING_MODEL" envDefault:"gemini-3-flash-preview"`
	ChatModel     string `env:"GEMINI_CHAT_MODEL" envDefault:"gemini-3-pro-preview"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment config: %w", err)
	}
	return cfg, nil
}

// DSN builds the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}
