package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env     string `env:"ENV" env-required:"true"`
	HTTP    HTTPConfig
	API     APIConfig
	Session SessionConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"3000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type APIConfig struct {
	// RootURL is the base URL of the todo REST API,
	// e.g. http://localhost:8000. All calls go below /api/v1.
	RootURL string        `env:"API_ROOT_URL" env-required:"true"`
	Timeout time.Duration `env:"API_TIMEOUT" env-default:"15s"`
}

type SessionConfig struct {
	Secret string        `env:"SESSION_SECRET" env-required:"true"`
	MaxAge time.Duration `env:"SESSION_MAX_AGE" env-default:"168h"`
}
