package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name          string
		config        *Config
		expectedPaths []string
	}{
		{
			name: "Valid",
			config: &Config{
				Default: "a",
				Profiles: map[string]Profile{
					"a": {BaseURL: "https://a.example.com/", VerifyTLS: boolPtr(true), Timeout: "5s"},
				},
			},
		},
		{
			name:          "No profiles",
			config:        &Config{},
			expectedPaths: []string{"profiles"},
		},
		{
			name: "Unknown default",
			config: &Config{
				Default:  "missing",
				Profiles: map[string]Profile{"a": {BaseURL: "http://a/"}},
			},
			expectedPaths: []string{"default"},
		},
		{
			name: "Relative base URL",
			config: &Config{
				Profiles: map[string]Profile{"a": {BaseURL: "/api/"}},
			},
			expectedPaths: []string{"profiles.a.baseUrl"},
		},
		{
			name: "Unsupported scheme",
			config: &Config{
				Profiles: map[string]Profile{"a": {BaseURL: "ftp://a/"}},
			},
			expectedPaths: []string{"profiles.a.baseUrl"},
		},
		{
			name: "Bad timeout and header",
			config: &Config{
				Profiles: map[string]Profile{"a": {
					BaseURL: "http://a/",
					Timeout: "-3s",
					Headers: map[string]string{"Bad Header": "x"},
				}},
			},
			expectedPaths: []string{"profiles.a.timeout", "profiles.a.headers"},
		},
		{
			name: "Token and password",
			config: &Config{
				Profiles: map[string]Profile{"a": {
					BaseURL: "http://a/",
					Auth:    &Auth{Username: "u", Token: "t"},
				}},
			},
			expectedPaths: []string{"profiles.a.auth"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateConfig(tt.config)

			var paths []string
			for _, err := range errs {
				paths = append(paths, err.Path)
			}
			assert.Equal(t, tt.expectedPaths, paths)
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Path: "profiles", Message: "at least one profile is required"},
		{Path: "default", Message: "unknown profile \"x\""},
	}
	assert.Equal(t, `invalid config: profiles: at least one profile is required; default: unknown profile "x"`, errs.Error())
}
