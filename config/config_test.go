package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrithikkoduri/GraphRAG/backend"
)

func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return Load(fs)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, backend.DefaultEndpoint, cfg.Endpoint)
	assert.Zero(t, cfg.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "chat.log", filepath.Base(cfg.Log.File))
}

func TestLoadFlags(t *testing.T) {
	cfg, err := load(t,
		"--endpoint", "https://rag.example.com/generate-response",
		"--timeout", "45s",
		"--log-level", "debug",
		"--log-file", "/tmp/chat.log",
	)
	require.NoError(t, err)

	assert.Equal(t, "https://rag.example.com/generate-response", cfg.Endpoint)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/chat.log", cfg.Log.File)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("GRAPHRAG_ENDPOINT", "http://10.0.0.5:8000/generate-response")
	t.Setenv("GRAPHRAG_LOG_FORMAT", "json")

	cfg, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8000/generate-response", cfg.Endpoint)
	assert.Equal(t, "json", cfg.Log.Format)

	// flags win over the environment
	cfg, err = load(t, "--endpoint", "http://localhost:9000/generate-response")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/generate-response", cfg.Endpoint)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.yaml")
	content := `
endpoint: http://graph.internal:8000/generate-response
timeout: 2m
log:
  level: warn
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := load(t, "--config", path)
	require.NoError(t, err)

	assert.Equal(t, "http://graph.internal:8000/generate-response", cfg.Endpoint)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadInvalid(t *testing.T) {
	t.Run("endpoint", func(t *testing.T) {
		_, err := load(t, "--endpoint", "localhost:8000")
		assert.Error(t, err)
	})

	t.Run("negative timeout", func(t *testing.T) {
		_, err := load(t, "--timeout=-1s")
		assert.Error(t, err)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := load(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
