package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, StoreSQLite, cfg.Store.Driver)
	assert.Equal(t, "inventory", cfg.Store.Collection)
	assert.Equal(t, "gpt-4o-mini", cfg.Recipe.Model)
	assert.Equal(t, 100, cfg.Recipe.MaxTokens)
	assert.False(t, cfg.TelemetryEnabled())
	assert.False(t, cfg.EventsEnabled())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pantry.yaml")
	content := `
http_addr: ":9090"
store:
  driver: memory
recipe:
  provider: gemini
  model: gemini-2.0-flash
  timeout: 5s
kafka_broker: localhost:9092
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, "inventory", cfg.Store.Collection, "unset keys keep their defaults")
	assert.Equal(t, ProviderGemini, cfg.Recipe.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.Recipe.Model)
	assert.Equal(t, 5*time.Second, cfg.Recipe.Timeout)
	assert.True(t, cfg.EventsEnabled())
}

func TestEnvOverrides(t *testing.T) {
	t.Run("env wins over file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pantry.yaml")
		require.NoError(t, os.WriteFile(path, []byte("http_addr: \":9090\"\n"), 0o600))
		t.Setenv("PANTRY_HTTP_ADDR", ":7070")
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("PANTRY_RECIPE_MAX_TOKENS", "42")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, ":7070", cfg.HTTPAddr)
		assert.Equal(t, "sk-test", cfg.Recipe.OpenAIAPIKey)
		assert.Equal(t, 42, cfg.Recipe.MaxTokens)
	})

	t.Run("bad max tokens", func(t *testing.T) {
		t.Setenv("PANTRY_RECIPE_MAX_TOKENS", "lots")
		_, err := LoadConfig("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PANTRY_RECIPE_MAX_TOKENS")
	})

	t.Run("bad timeout", func(t *testing.T) {
		t.Setenv("PANTRY_RECIPE_TIMEOUT", "soon")
		_, err := LoadConfig("")
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Store.Driver = "mongo" },
			wantErr: `unknown store driver "mongo"`,
		},
		{
			name:    "firestore needs project",
			mutate:  func(c *Config) { c.Store.Driver = StoreFirestore },
			wantErr: "FIRESTORE_PROJECT_ID environment variable is required",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Recipe.Provider = "llama" },
			wantErr: `unknown recipe provider "llama"`,
		},
		{
			name:    "non-positive max tokens",
			mutate:  func(c *Config) { c.Recipe.MaxTokens = 0 },
			wantErr: "recipe max_tokens must be positive",
		},
		{
			name: "max tokens beyond int32",
			mutate: func(c *Config) {
				c.Recipe.MaxTokens = math.MaxInt32
				c.Recipe.MaxTokens++
			},
			wantErr: "recipe max_tokens must not exceed 2147483647",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestRequireCredentials(t *testing.T) {
	cfg := DefaultConfig()
	assert.EqualError(t, cfg.RequireCredentials(), "OPENAI_API_KEY environment variable is required")

	cfg.Recipe.OpenAIAPIKey = "sk-test"
	assert.NoError(t, cfg.RequireCredentials())

	cfg.Recipe.Provider = ProviderGemini
	assert.EqualError(t, cfg.RequireCredentials(), "GEMINI_API_KEY environment variable is required")
}

func TestModelName(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		model    string
		want     string
	}{
		{name: "openai default", provider: ProviderOpenAI, model: DefaultOpenAIModel, want: "gpt-4o-mini"},
		{name: "gemini with openai default", provider: ProviderGemini, model: DefaultOpenAIModel, want: "gemini-2.0-flash"},
		{name: "gemini explicit", provider: ProviderGemini, model: "gemini-1.5-pro", want: "gemini-1.5-pro"},
		{name: "openai explicit", provider: ProviderOpenAI, model: "gpt-4o", want: "gpt-4o"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := RecipeConfig{Provider: tt.provider, Model: tt.model}
			assert.Equal(t, tt.want, r.ModelName())
		})
	}
}
