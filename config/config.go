package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Fitness plan sources
const (
	PlanSourceCatalog    = "catalog"
	PlanSourceGenerative = "generative"
)

// Error modes
const (
	// ErrorModeCompat answers domain failures with 200 and an error body.
	ErrorModeCompat = "compat"
	// ErrorModeStrict answers every failure with the status of its error code.
	ErrorModeStrict = "strict"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost string
	ServerPort string

	// Upstream APIs
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIModel     string
	USDAAPIKey      string
	USDABaseURL     string
	UpstreamTimeout time.Duration

	// Fitness plan strategy
	FitnessPlanSource string
	CatalogPath       string
	AWSRegion         string

	ErrorMode          string
	CORSAllowedOrigins []string

	// Logging
	LogLevel     string
	LogFormat    string
	LogstashURL  string
	ElasticURL   string
	ElasticIndex string
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, c.ServerPort)
}

// LoadConfig reads .env, the process environment and secret files, then validates the result
func LoadConfig() (*Config, error) {
	// A missing .env file is fine, the environment may already be populated
	_ = godotenv.Load()

	env := GetEnvironment()
	v := newViper(env)

	cfg := &Config{
		Environment:        env,
		ServerHost:         v.GetString("server_host"),
		ServerPort:         v.GetString("server_port"),
		OpenAIAPIKey:       resolveSecret(v, "openai_api_key"),
		OpenAIBaseURL:      strings.TrimRight(v.GetString("openai_base_url"), "/"),
		OpenAIModel:        v.GetString("openai_model"),
		USDAAPIKey:         resolveSecret(v, "usda_api_key"),
		USDABaseURL:        strings.TrimRight(v.GetString("usda_base_url"), "/"),
		UpstreamTimeout:    parseDuration(v.GetString("upstream_timeout")),
		FitnessPlanSource:  strings.ToLower(strings.TrimSpace(v.GetString("fitness_plan_source"))),
		CatalogPath:        strings.TrimSpace(v.GetString("catalog_path")),
		AWSRegion:          v.GetString("aws_region"),
		ErrorMode:          strings.ToLower(strings.TrimSpace(v.GetString("error_mode"))),
		CORSAllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
		LogLevel:           v.GetString("log_level"),
		LogFormat:          v.GetString("log_format"),
		LogstashURL:        v.GetString("log_logstash_url"),
		ElasticURL:         v.GetString("log_elastic_url"),
		ElasticIndex:       v.GetString("log_elastic_index"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newViper(env Environment) *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("server_host", "")
	v.SetDefault("server_port", "8080")
	v.SetDefault("openai_base_url", "https://api.openai.com/v1")
	v.SetDefault("openai_model", "gpt-4")
	v.SetDefault("usda_base_url", "https://api.nal.usda.gov/fdc/v1")
	v.SetDefault("upstream_timeout", "30s")
	v.SetDefault("fitness_plan_source", PlanSourceCatalog)
	v.SetDefault("catalog_path", "exercises.json")
	v.SetDefault("error_mode", ErrorModeCompat)
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", env.DefaultLogFormat())
	v.SetDefault("log_elastic_index", "fitbuddy")

	return v
}

// resolveSecret looks the key up in the environment, then in <KEY>_FILE, then in the Docker secrets directory
func resolveSecret(v *viper.Viper, key string) string {
	if value := strings.TrimSpace(v.GetString(key)); value != "" {
		return value
	}
	if path := strings.TrimSpace(v.GetString(key + "_file")); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return readSecret(key)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// parseDuration requires a unit, so "30" is rejected instead of meaning 30ns.
// Unparsable values come back as 0 and fail validation.
func parseDuration(raw string) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) String() string {
	return fmt.Sprintf("env=%s addr=%s plan_source=%s catalog=%s error_mode=%s timeout=%s",
		c.Environment, c.Addr(), c.FitnessPlanSource, c.CatalogPath, c.ErrorMode, c.UpstreamTimeout)
}
