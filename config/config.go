package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported chat-completion providers.
const (
	ProviderAzure  = "azure"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

const defaultAPIVersion = "2023-03-15-preview"

// Config is the service configuration. Credentials are never read from the YAML file.
type Config struct {
	Server struct {
		Host            string        `yaml:"host"`
		Port            int           `yaml:"port"`
		ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
		AllowOrigins    []string      `yaml:"allowOrigins"`
	} `yaml:"server"`

	LLM struct {
		Provider       string        `yaml:"provider"`
		Endpoint       string        `yaml:"endpoint"`
		DeploymentName string        `yaml:"deploymentName"`
		APIVersion     string        `yaml:"apiVersion"`
		GeminiModel    string        `yaml:"geminiModel"`
		Temperature    float64       `yaml:"temperature"`
		Timeout        time.Duration `yaml:"timeout"`

		// Credentials come from the environment only.
		APIKey       string `yaml:"-"`
		GeminiAPIKey string `yaml:"-"`
	} `yaml:"llm"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Addr is the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 8880
	cfg.Server.ShutdownTimeout = 10 * time.Second
	cfg.Server.AllowOrigins = []string{"*"}
	cfg.LLM.Provider = ProviderAzure
	cfg.LLM.APIVersion = defaultAPIVersion
	cfg.LLM.GeminiModel = "gemini-2.5-flash"
	cfg.LLM.Timeout = 60 * time.Second
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"
	return cfg
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE and the process environment (a .env file is loaded if present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.normalizeEndpoint()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Host, "HOST")
	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.Endpoint, "ENDPOINT")
	setString(&c.LLM.DeploymentName, "DEPLOYMENT_NAME")
	setString(&c.LLM.APIVersion, "API_VERSION")
	setString(&c.LLM.GeminiModel, "GEMINI_MODEL")
	setString(&c.LLM.APIKey, "API_KEY")
	setString(&c.LLM.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.AllowOrigins = origins
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: PORT=%q is not a valid port: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: LLM_TEMPERATURE=%q is not a number: %w", v, err)
		}
		c.LLM.Temperature = t
	}
	if err := setDuration(&c.LLM.Timeout, "LLM_TIMEOUT"); err != nil {
		return err
	}
	return setDuration(&c.Server.ShutdownTimeout, "SHUTDOWN_TIMEOUT")
}

// normalizeEndpoint accepts a full Azure chat-completions URL in ENDPOINT and
// reduces it to the resource base URL, keeping its deployment and api-version
// unless they were configured explicitly.
func (c *Config) normalizeEndpoint() {
	u, err := url.Parse(strings.TrimSpace(c.LLM.Endpoint))
	if err != nil || u.Host == "" {
		return
	}
	if v := u.Query().Get("api-version"); v != "" && c.LLM.APIVersion == defaultAPIVersion {
		c.LLM.APIVersion = v
	}
	if i := strings.Index(u.Path, "/openai/deployments/"); i >= 0 {
		rest := strings.TrimPrefix(u.Path[i:], "/openai/deployments/")
		if name, _, _ := strings.Cut(rest, "/"); name != "" && c.LLM.DeploymentName == "" {
			c.LLM.DeploymentName = name
		}
		u.Path = u.Path[:i]
	}
	u.RawQuery = ""
	c.LLM.Endpoint = strings.TrimRight(u.String(), "/")
}

// Validate reports the first missing or invalid setting for the selected provider.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: port %d is out of range", c.Server.Port)
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("config: LLM_TIMEOUT must be positive")
	}

	switch c.LLM.Provider {
	case ProviderAzure:
		return requireAll(map[string]string{
			"API_KEY":         c.LLM.APIKey,
			"ENDPOINT":        c.LLM.Endpoint,
			"DEPLOYMENT_NAME": c.LLM.DeploymentName,
		})
	case ProviderOpenAI:
		return requireAll(map[string]string{
			"API_KEY":         c.LLM.APIKey,
			"DEPLOYMENT_NAME": c.LLM.DeploymentName,
		})
	case ProviderGemini:
		return requireAll(map[string]string{"GEMINI_API_KEY": c.LLM.GeminiAPIKey})
	default:
		return fmt.Errorf("config: unknown LLM_PROVIDER %q", c.LLM.Provider)
	}
}

func requireAll(vars map[string]string) error {
	var missing []string
	for k, v := range vars {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)
	return fmt.Errorf("config: required environment variable(s) not set: %s", strings.Join(missing, ", "))
}

func setString(dst *string, k string) {
	if v := os.Getenv(k); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, k string) error {
	v := os.Getenv(k)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("config: %s=%q is not a valid duration: %w", k, v, err)
	}
	*dst = d
	return nil
}
