package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Path is the dotted path to the invalid field
	Path string

	// Message describes the validation error
	Message string
}

// Error returns the error message.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors collects every problem found in a file.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	parts := make([]string, len(ve))
	for i, err := range ve {
		parts[i] = err.Error()
	}
	return "invalid config: " + strings.Join(parts, "; ")
}

// ValidateConfig validates the configuration and returns a slice of validation errors.
// An empty slice indicates the configuration is valid.
func ValidateConfig(config *Config) []ValidationError {
	var errors []ValidationError

	if len(config.Profiles) == 0 {
		errors = append(errors, ValidationError{
			Path:    "profiles",
			Message: "at least one profile is required",
		})
	}

	if config.Default != "" {
		if _, ok := config.Profiles[config.Default]; !ok {
			errors = append(errors, ValidationError{
				Path:    "default",
				Message: fmt.Sprintf("unknown profile %q", config.Default),
			})
		}
	}

	for _, name := range config.Names() {
		errors = append(errors, ValidateProfile(name, config.Profiles[name])...)
	}

	return errors
}

// ValidateProfile validates a single profile.
func ValidateProfile(name string, p Profile) []ValidationError {
	var errors []ValidationError
	prefix := "profiles." + name

	if p.BaseURL == "" {
		errors = append(errors, ValidationError{
			Path:    prefix + ".baseUrl",
			Message: "baseUrl is required",
		})
	} else if u, err := url.Parse(p.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errors = append(errors, ValidationError{
			Path:    prefix + ".baseUrl",
			Message: "baseUrl must be an absolute http or https URL",
		})
	}

	if p.Timeout != "" {
		if d, err := ParseDurationString(p.Timeout); err != nil {
			errors = append(errors, ValidationError{
				Path:    prefix + ".timeout",
				Message: err.Error(),
			})
		} else if d < 0 {
			errors = append(errors, ValidationError{
				Path:    prefix + ".timeout",
				Message: "timeout cannot be negative",
			})
		}
	}

	for key := range p.Headers {
		if strings.TrimSpace(key) == "" || strings.ContainsAny(key, " :\r\n") {
			errors = append(errors, ValidationError{
				Path:    prefix + ".headers",
				Message: fmt.Sprintf("invalid header name %q", key),
			})
		}
	}

	if p.Auth != nil && p.Auth.Token != "" && (p.Auth.Username != "" || p.Auth.Password != "") {
		errors = append(errors, ValidationError{
			Path:    prefix + ".auth",
			Message: "use either token or username/password, not both",
		})
	}

	return errors
}
