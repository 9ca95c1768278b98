package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr  string `env:"LISTEN_ADDR" envDefault:":8080"`
	DBPath      string `env:"DB_PATH" envDefault:"/data/closet.db"`
	ImageDBPath string `env:"IMAGE_DB_PATH" envDefault:"/data/closet-images.db"`

	// Assistant settings. An empty API key disables the assistant feature.
	AIBackend string `env:"AI_BACKEND" envDefault:"openai"`
	AIBaseURL string `env:"AI_BASE_URL" envDefault:"https://api.moonshot.cn/v1"`
	AIAPIKey  string `env:"AI_API_KEY"`
	AIModel   string `env:"AI_MODEL" envDefault:"moonshot-v1-8k-vision-preview"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
}

// Load reads configuration from the environment, after loading an
// optional .env file. A missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) AssistantEnabled() bool {
	return c.AIAPIKey != ""
}
