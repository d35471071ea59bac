package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_FILE", "HOST", "PORT", "LLM_PROVIDER", "ENDPOINT", "DEPLOYMENT_NAME",
		"API_VERSION", "API_KEY", "GEMINI_API_KEY", "GEMINI_MODEL", "LLM_TEMPERATURE",
		"LLM_TIMEOUT", "SHUTDOWN_TIMEOUT", "CORS_ALLOW_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func setAzureEnv(t *testing.T) {
	t.Setenv("API_KEY", "secret")
	t.Setenv("ENDPOINT", "https://example.openai.azure.com/")
	t.Setenv("DEPLOYMENT_NAME", "gpt-4o")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	setAzureEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8880", cfg.Addr())
	assert.Equal(t, ProviderAzure, cfg.LLM.Provider)
	assert.Equal(t, "https://example.openai.azure.com", cfg.LLM.Endpoint)
	assert.Equal(t, "gpt-4o", cfg.LLM.DeploymentName)
	assert.Equal(t, "2023-03-15-preview", cfg.LLM.APIVersion)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	setAzureEnv(t)
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "9000")
	t.Setenv("LLM_TIMEOUT", "45s")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 0.2, cfg.LLM.Temperature)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowOrigins)
}

func TestLoadFullAzureURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "secret")
	t.Setenv("ENDPOINT", "https://res.openai.azure.com/openai/deployments/enfluent-gpt-4o/chat/completions?api-version=2024-02-01")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://res.openai.azure.com", cfg.LLM.Endpoint)
	assert.Equal(t, "enfluent-gpt-4o", cfg.LLM.DeploymentName)
	assert.Equal(t, "2024-02-01", cfg.LLM.APIVersion)
}

func TestLoadMissingCredentials(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY, DEPLOYMENT_NAME, ENDPOINT")
}

func TestLoadGeminiProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "gemini")

	_, err := Load()
	assert.ErrorContains(t, err, "GEMINI_API_KEY")

	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.GeminiModel)
}

func TestLoadInvalidValues(t *testing.T) {
	clearEnv(t)
	setAzureEnv(t)

	t.Setenv("PORT", "eighty")
	_, err := Load()
	assert.ErrorContains(t, err, "PORT")

	t.Setenv("PORT", "")
	t.Setenv("LLM_TIMEOUT", "soon")
	_, err = Load()
	assert.ErrorContains(t, err, "LLM_TIMEOUT")

	t.Setenv("LLM_TIMEOUT", "")
	t.Setenv("LLM_PROVIDER", "bard")
	_, err = Load()
	assert.ErrorContains(t, err, `unknown LLM_PROVIDER "bard"`)
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	setAzureEnv(t)

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: 0.0.0.0
  port: 8081
llm:
  timeout: 30s
  temperature: 0.1
log:
  format: text
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "8082")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8082", cfg.Addr(), "environment wins over the file")
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 0.1, cfg.LLM.Temperature)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
}

func TestLoadMissingYAMLFile(t *testing.T) {
	clearEnv(t)
	setAzureEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yml"))

	_, err := Load()
	assert.ErrorContains(t, err, "failed to read config file")
}
