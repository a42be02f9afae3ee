package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Server   Server `yaml:"server"`
	Game     Game   `yaml:"game"`
	Redis    Redis  `yaml:"redis"`
}

type Server struct {
	BaseURL string `yaml:"base-url" env:"SERVER_BASE_URL" env-default:"http://localhost:5000/api"`
}

type Game struct {
	ID       string `yaml:"id" env:"GAME_ID" env-default:"default"`
	PlayerID string `yaml:"player-id" env:"PLAYER_ID"`
	// PollInterval is env-only: the yaml decoder cannot parse duration strings.
	PollInterval time.Duration `env:"POLL_INTERVAL" env-default:"2s"`
}

// Redis is optional; with no host configured the client runs without session
// persistence.
type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
