package config

import (
	"os"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment
func GetEnvironment() Environment {
	// CI environment is automatically detected
	if os.Getenv("CI") == "true" {
		return CI
	}
	return ParseEnvironment(os.Getenv("ENV"))
}

// ParseEnvironment maps an ENV value to an Environment, defaulting to development.
func ParseEnvironment(value string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(value))) {
	case Production:
		return Production
	case Test:
		return Test
	case CI:
		return CI
	default:
		return Development
	}
}

// IsProduction returns true for the production environment
func (e Environment) IsProduction() bool {
	return e == Production
}

// DefaultLogFormat is json in production and text everywhere else.
func (e Environment) DefaultLogFormat() string {
	if e.IsProduction() {
		return "json"
	}
	return "text"
}
