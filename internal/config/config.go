package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ServiceName    = "pantry-service"
	ServiceVersion = "0.1.0"
)

const (
	ItemChangedTopic = "InventoryChanged"
	WatchGroupID     = "pantry-watch-group"
	BatchTimeout     = 10 * time.Millisecond
	BatchSize        = 100
)

const (
	LogsPath      = "/otlp/v1/logs"   // Grafana Cloud OTLP path
	TracesPath    = "/otlp/v1/traces" // Grafana Cloud OTLP path
	ExportTimeout = 30 * time.Second
	MaxQueueSize  = 2048
)

// Store drivers.
const (
	StoreSQLite    = "sqlite"
	StoreFirestore = "firestore"
	StoreMemory    = "memory"
)

// Completion providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGeminiModel = "gemini-2.0-flash"
)

type Config struct {
	HTTPAddr string       `yaml:"http_addr"`
	LogLevel string       `yaml:"log_level"`
	Store    StoreConfig  `yaml:"store"`
	Recipe   RecipeConfig `yaml:"recipe"`

	KafkaBroker    string `yaml:"kafka_broker"`
	OtelEndpoint   string `yaml:"otel_endpoint"`
	OtelAuthHeader string `yaml:"otel_auth_header"`
}

type StoreConfig struct {
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlite_path"`
	ProjectID  string `yaml:"project_id"`
	Collection string `yaml:"collection"`
}

type RecipeConfig struct {
	Provider      string        `yaml:"provider"`
	Model         string        `yaml:"model"`
	MaxTokens     int           `yaml:"max_tokens"`
	Timeout       time.Duration `yaml:"timeout"`
	OpenAIAPIKey  string        `yaml:"openai_api_key"`
	OpenAIBaseURL string        `yaml:"openai_base_url"`
	GeminiAPIKey  string        `yaml:"gemini_api_key"`
}

// DefaultConfig returns a configuration that runs locally against a SQLite file.
func DefaultConfig() *Config {
	return &Config{
		HTTPAddr: ":8080",
		LogLevel: "info",
		Store: StoreConfig{
			Driver:     StoreSQLite,
			SQLitePath: "pantry.db",
			Collection: "inventory",
		},
		Recipe: RecipeConfig{
			Provider:  ProviderOpenAI,
			Model:     DefaultOpenAIModel,
			MaxTokens: 100,
			Timeout:   30 * time.Second,
		},
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file and
// the environment, in that order.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	setString(&c.HTTPAddr, "PANTRY_HTTP_ADDR")
	setString(&c.LogLevel, "PANTRY_LOG_LEVEL")
	setString(&c.Store.Driver, "PANTRY_STORE_DRIVER")
	setString(&c.Store.SQLitePath, "PANTRY_SQLITE_PATH")
	setString(&c.Store.ProjectID, "FIRESTORE_PROJECT_ID")
	setString(&c.Store.Collection, "PANTRY_COLLECTION")
	setString(&c.Recipe.Provider, "PANTRY_RECIPE_PROVIDER")
	setString(&c.Recipe.Model, "PANTRY_RECIPE_MODEL")
	setString(&c.Recipe.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&c.Recipe.OpenAIBaseURL, "OPENAI_BASE_URL")
	setString(&c.Recipe.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.KafkaBroker, "KAFKA_BROKER")
	setString(&c.OtelEndpoint, "OTEL_ENDPOINT")
	setString(&c.OtelAuthHeader, "OTEL_AUTH_HEADER")

	if v := os.Getenv("PANTRY_RECIPE_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PANTRY_RECIPE_MAX_TOKENS must be an integer: %w", err)
		}
		c.Recipe.MaxTokens = n
	}
	if v := os.Getenv("PANTRY_RECIPE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PANTRY_RECIPE_TIMEOUT must be a duration: %w", err)
		}
		c.Recipe.Timeout = d
	}

	return nil
}

// Validate checks that the selected store driver and provider are known and
// that the store has what it needs.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("PANTRY_SQLITE_PATH environment variable is required")
		}
	case StoreFirestore:
		if c.Store.ProjectID == "" {
			return errors.New("FIRESTORE_PROJECT_ID environment variable is required")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	switch c.Recipe.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unknown recipe provider %q", c.Recipe.Provider)
	}

	if c.Recipe.MaxTokens <= 0 {
		return errors.New("recipe max_tokens must be positive")
	}
	if c.Recipe.MaxTokens > math.MaxInt32 {
		return fmt.Errorf("recipe max_tokens must not exceed %d", math.MaxInt32)
	}
	if c.Store.Collection == "" {
		return errors.New("store collection must not be empty")
	}

	return nil
}

// RequireCredentials checks that the API key for the selected provider is set.
// Only the serving process needs it.
func (c *Config) RequireCredentials() error {
	switch c.Recipe.Provider {
	case ProviderOpenAI:
		if c.Recipe.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY environment variable is required")
		}
	case ProviderGemini:
		if c.Recipe.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY environment variable is required")
		}
	}
	return nil
}

// ModelName is the configured model, switched to the Gemini default when the
// provider is gemini and the model was left at the OpenAI default.
func (r RecipeConfig) ModelName() string {
	if r.Provider == ProviderGemini && r.Model == DefaultOpenAIModel {
		return DefaultGeminiModel
	}
	return r.Model
}

// TelemetryEnabled reports whether an OTLP endpoint was configured.
func (c *Config) TelemetryEnabled() bool {
	return c.OtelEndpoint != ""
}

// EventsEnabled reports whether a Kafka broker was configured.
func (c *Config) EventsEnabled() bool {
	return c.KafkaBroker != ""
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
