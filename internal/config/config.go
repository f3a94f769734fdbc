// Package config manages the registry's runtime configuration.
//
// Values are layered in three steps, later layers winning:
//   - built-in defaults (see defaults below)
//   - an optional YAML file (path passed by the CLI)
//   - environment variables prefixed with REGISTRY_ (a `.env` file is autoloaded)
//
// The result is decoded into Config and validated so the process fails fast
// on bad or missing values.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process environment before
	// any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

/*
	Env keys are read with the REGISTRY_ prefix, lowercased, and nested with
	the "." delimiter:

	  REGISTRY_SERVER.PORT          -> server.port          -> Config.Server.Port
	  REGISTRY_ASSISTANT.TOOLS_URL  -> assistant.tools_url  -> Config.Assistant.ToolsURL

	Underscores are kept as part of the key name, so nested blocks must be
	separated with a dot.
*/

// EnvPrefix is the prefix every registry environment variable carries.
const EnvPrefix = "REGISTRY_"

// ServiceName tags logs, traces and APM data for this binary.
const ServiceName = "registry"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Assistant     AssistantConfig      `koanf:"assistant" validate:"required"`
	Search        SearchConfig         `koanf:"search"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
	StaticDir          string   `koanf:"static_dir" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// IntegrationConfig holds credentials for third-party integrations.
//
// Low-stock alert e-mails are only sent when both ResendAPIKey and
// AlertEmail are set.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	AlertEmail   string `koanf:"alert_email" validate:"omitempty,email"`
	EmailFrom    string `koanf:"email_from"`
}

// AssistantConfig configures the conversational assistant behind /chat.
type AssistantConfig struct {
	// Provider selects the model backend: "openai" speaks the OpenAI chat
	// completions protocol (OpenAI, Ollama's /v1, vLLM...), "gemini" uses
	// the Google Gen AI SDK.
	Provider    string  `koanf:"provider" validate:"required,oneof=openai gemini"`
	Model       string  `koanf:"model" validate:"required"`
	BaseURL     string  `koanf:"base_url"`
	APIKey      string  `koanf:"api_key"`
	Temperature float32 `koanf:"temperature" validate:"min=0,max=2"`

	// ToolsURL is the MCP endpoint the assistant discovers its tools from.
	// By default this is the registry's own /mcp route.
	ToolsURL string `koanf:"tools_url" validate:"required,url"`

	// MaxSteps bounds the number of model turns in one run.
	MaxSteps int `koanf:"max_steps" validate:"min=1"`

	// SystemPrompt overrides the built-in system instruction when set.
	SystemPrompt string `koanf:"system_prompt"`

	// RateLimit is the sustained number of chat requests per second allowed
	// per client IP; zero disables limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
	RateBurst int     `koanf:"rate_burst" validate:"min=0"`
}

// SearchConfig tunes the search predicate builder.
type SearchConfig struct {
	// AthleteZeroBoundAbsent treats a 0 range bound in athlete searches as
	// "not provided". Medical-supply searches always honour zero bounds.
	AthleteZeroBoundAbsent bool `koanf:"athlete_zero_bound_absent"`
}

// defaults is the lowest configuration layer.
var defaults = map[string]any{
	"primary.env": "development",

	"server.port":                 "8080",
	"server.read_timeout":         30,
	"server.write_timeout":        180,
	"server.idle_timeout":         60,
	"server.cors_allowed_origins": []string{"*"},
	"server.static_dir":           "static",

	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.name":               "registry",
	"database.ssl_mode":           "disable",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  300,
	"database.conn_max_idle_time": 60,

	"redis.address": "localhost:6379",

	"integration.email_from": "Registry <alerts@resend.dev>",

	"assistant.provider":    "openai",
	"assistant.model":       "qwen3:4b",
	"assistant.base_url":    "http://localhost:11434/v1",
	"assistant.api_key":     "ollama",
	"assistant.temperature": 0.7,
	"assistant.tools_url":   "http://localhost:8080/mcp",
	"assistant.max_steps":   25,
	"assistant.rate_limit":  2,
	"assistant.rate_burst":  5,

	"search.athlete_zero_bound_absent": true,
}

// LoadConfig builds the configuration from defaults, the optional YAML file
// at path (skipped when empty) and REGISTRY_ environment variables, then
// validates it.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("loading config defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	} else {
		mainConfig.Observability.applyDefaults()
	}

	// Service name and environment are not user-configurable so telemetry
	// is always labelled consistently.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
