package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"pantryservice/internal/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears environment that would otherwise leak into LoadConfig.
func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{"OPENAI_API_KEY", "GEMINI_API_KEY", "KAFKA_BROKER", "OTEL_ENDPOINT", "PANTRY_RECIPE_PROVIDER"} {
		t.Setenv(key, "")
	}
	t.Setenv("PANTRY_STORE_DRIVER", "memory")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "tui", "watch"}, names)
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestServeRequiresAPIKey(t *testing.T) {
	isolate(t)

	_, err := execute(t, "serve")
	assert.EqualError(t, err, "OPENAI_API_KEY environment variable is required")
}

func TestWatchRequiresBroker(t *testing.T) {
	isolate(t)

	_, err := execute(t, "watch")
	assert.EqualError(t, err, "KAFKA_BROKER environment variable is required")
}

func TestMissingConfigFile(t *testing.T) {
	isolate(t)

	_, err := execute(t, "serve", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestFormatEvent(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, "09:30:00  +2.5  Olive oil", formatEvent(inventory.ItemChangedEvent{
		Name: "olive oil", Operation: inventory.OperationIncrement, Amount: 2.5, OccurredAt: at,
	}))
	assert.Equal(t, "09:30:00  -1  Eggs", formatEvent(inventory.ItemChangedEvent{
		Name: "eggs", Operation: inventory.OperationDecrement, Amount: 1, OccurredAt: at,
	}))
}
