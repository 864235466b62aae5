package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// Mode values for the diagnosis endpoint.
const (
	ModeData  = "data"
	ModeImage = "image"
)

type OpenAI struct {
	// APIKey is the model credential. When empty the endpoint answers
	// 503 until restart; nothing retries the configuration.
	APIKey    string `env:"OPENAI_API_KEY"`
	BaseURL   string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	Model     string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	MaxTokens int    `env:"OPENAI_MAX_TOKENS" envDefault:"4096"`
}

type RateLimit struct {
	Max           int `env:"RATE_LIMIT_MAX" envDefault:"10"`
	WindowMinutes int `env:"RATE_LIMIT_WINDOW_MINUTES" envDefault:"60"`
	SweepMinutes  int `env:"RATE_LIMIT_SWEEP_MINUTES" envDefault:"10"`
}

type Mongo struct {
	// URI enables the persistence-backed variant when set.
	URI        string `env:"MONGO_URI"`
	Database   string `env:"MONGO_DATABASE" envDefault:"palette"`
	Collection string `env:"MONGO_COLLECTION" envDefault:"usage_records"`
}

type Config struct {
	// HTTP listen address, e.g. ":8080"
	Address string `env:"ADDRESS" envDefault:":8080"`

	// Mode selects the request shape: "data" or "image".
	Mode string `env:"DIAGNOSIS_MODE" envDefault:"data"`

	// Enabled gates the diagnosis endpoint; deployments ship with it
	// off until explicitly activated.
	Enabled bool `env:"DIAGNOSIS_ENABLED" envDefault:"false"`

	OpenAI    OpenAI
	RateLimit RateLimit
	Mongo     Mongo
}

// Load loads .env (if present) and parses environment variables into Config.
func Load() (Config, error) {
	// Load .env if available; ignore error if file does not exist
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Mode != ModeData && cfg.Mode != ModeImage {
		return Config{}, fmt.Errorf("unknown DIAGNOSIS_MODE %q", cfg.Mode)
	}
	return cfg, nil
}
