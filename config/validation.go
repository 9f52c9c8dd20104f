package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minUpstreamTimeout = time.Millisecond

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a configuration
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, e.Error())
	}
	return fmt.Sprintf("configuration validation failed:\n%s", strings.Join(lines, "\n"))
}

// ValidateConfig checks that every value needed to serve requests is present and well formed
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if cfg.OpenAIAPIKey == "" {
		errs = append(errs, ValidationError{"OPENAI_API_KEY", "is required (env, OPENAI_API_KEY_FILE or openai_api_key secret)"})
	}
	if cfg.USDAAPIKey == "" {
		errs = append(errs, ValidationError{"USDA_API_KEY", "is required (env, USDA_API_KEY_FILE or usda_api_key secret)"})
	}
	if cfg.OpenAIBaseURL == "" {
		errs = append(errs, ValidationError{"OPENAI_BASE_URL", "must not be empty"})
	}
	if cfg.USDABaseURL == "" {
		errs = append(errs, ValidationError{"USDA_BASE_URL", "must not be empty"})
	}
	if cfg.OpenAIModel == "" {
		errs = append(errs, ValidationError{"OPENAI_MODEL", "must not be empty"})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		errs = append(errs, ValidationError{"SERVER_PORT", fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}

	if cfg.UpstreamTimeout < minUpstreamTimeout {
		errs = append(errs, ValidationError{"UPSTREAM_TIMEOUT", "must be a duration with a unit of at least 1ms, such as 30s"})
	}

	switch cfg.FitnessPlanSource {
	case PlanSourceCatalog:
		if cfg.CatalogPath == "" {
			errs = append(errs, ValidationError{"CATALOG_PATH", "is required when FITNESS_PLAN_SOURCE is catalog"})
		}
	case PlanSourceGenerative:
	default:
		errs = append(errs, ValidationError{"FITNESS_PLAN_SOURCE", fmt.Sprintf("unknown source %q, expected catalog or generative", cfg.FitnessPlanSource)})
	}

	switch cfg.ErrorMode {
	case ErrorModeCompat, ErrorModeStrict:
	default:
		errs = append(errs, ValidationError{"ERROR_MODE", fmt.Sprintf("unknown mode %q, expected compat or strict", cfg.ErrorMode)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
