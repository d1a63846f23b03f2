package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/apitopy"
)

// EnvConfigPath names the environment variable that overrides DefaultPath.
const EnvConfigPath = "APITOPY_CONFIG"

// ErrProfileNotFound is returned when a named profile does not exist.
var ErrProfileNotFound = errors.New("profile not found")

// Config is the top-level profile file.
type Config struct {
	Default  string             `json:"default,omitempty" yaml:"default,omitempty"`
	Profiles map[string]Profile `json:"profiles" yaml:"profiles"`
}

// Profile describes how to reach one API.
type Profile struct {
	BaseURL     string            `json:"baseUrl" yaml:"baseUrl"`
	Suffix      string            `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Headers     map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	VerifyTLS   *bool             `json:"verifyTls,omitempty" yaml:"verifyTls,omitempty"`
	EnsureSlash bool              `json:"ensureSlash,omitempty" yaml:"ensureSlash,omitempty"`
	Verbose     bool              `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	Timeout     string            `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Auth        *Auth             `json:"auth,omitempty" yaml:"auth,omitempty"`
}

// Auth holds either basic credentials or a bearer token.
type Auth struct {
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	Token    string `json:"token,omitempty" yaml:"token,omitempty"`
}

// DefaultPath returns $APITOPY_CONFIG, or ~/.apitopy.yaml when unset.
func DefaultPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".apitopy.yaml"
	}
	return filepath.Join(home, ".apitopy.yaml")
}

// LoadConfig reads, parses and validates a profile file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data, path)
}

// ParseConfig parses and validates profile data. The format is chosen by the
// extension of path and defaults to YAML.
func ParseConfig(data []byte, path string) (*Config, error) {
	var config Config

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config (unknown format %s): %w", ext, err)
		}
	}

	config.expandEnv()

	if errs := ValidateConfig(&config); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &config, nil
}

func (c *Config) expandEnv() {
	for name, p := range c.Profiles {
		p.BaseURL = os.ExpandEnv(p.BaseURL)
		p.Suffix = os.ExpandEnv(p.Suffix)
		p.Timeout = os.ExpandEnv(p.Timeout)
		for key, value := range p.Headers {
			p.Headers[key] = os.ExpandEnv(value)
		}
		if p.Auth != nil {
			auth := *p.Auth
			auth.Username = os.ExpandEnv(auth.Username)
			auth.Password = os.ExpandEnv(auth.Password)
			auth.Token = os.ExpandEnv(auth.Token)
			p.Auth = &auth
		}
		c.Profiles[name] = p
	}
}

// Names returns the profile names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Profile returns the named profile. An empty name selects Default, or the
// only profile when exactly one is defined.
func (c *Config) Profile(name string) (Profile, error) {
	if name == "" {
		name = c.Default
	}
	if name == "" && len(c.Profiles) == 1 {
		for only := range c.Profiles {
			name = only
		}
	}
	if name == "" {
		return Profile{}, fmt.Errorf("%w: no profile selected and no default set", ErrProfileNotFound)
	}

	profile, ok := c.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return profile, nil
}

// TimeoutDuration parses Timeout. Zero means the transport default.
func (p Profile) TimeoutDuration() (time.Duration, error) {
	return ParseDurationString(p.Timeout)
}

// Options converts the profile into apitopy options.
func (p Profile) Options() ([]apitopy.Option, error) {
	opts := []apitopy.Option{
		apitopy.WithSuffix(p.Suffix),
		apitopy.WithEnsureSlash(p.EnsureSlash),
		apitopy.WithVerbose(p.Verbose),
	}
	if p.VerifyTLS != nil {
		opts = append(opts, apitopy.WithVerifyTLS(*p.VerifyTLS))
	}
	if len(p.Headers) > 0 {
		opts = append(opts, apitopy.WithHeaders(p.Headers))
	}

	timeout, err := p.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, apitopy.WithTimeout(timeout))
	}

	if p.Auth != nil {
		switch {
		case p.Auth.Token != "":
			opts = append(opts, apitopy.WithAuth(apitopy.BearerToken(p.Auth.Token)))
		case p.Auth.Username != "" || p.Auth.Password != "":
			opts = append(opts, apitopy.WithAuth(apitopy.BasicAuth{
				Username: p.Auth.Username,
				Password: p.Auth.Password,
			}))
		}
	}
	return opts, nil
}

// NewAPI builds an API from the profile. extra options are applied last.
func (p Profile) NewAPI(extra ...apitopy.Option) (*apitopy.API, error) {
	opts, err := p.Options()
	if err != nil {
		return nil, err
	}
	return apitopy.New(p.BaseURL, append(opts, extra...)...), nil
}

// ParseDurationString parses a duration string with support for common formats.
//
// Supported formats:
//   - Standard Go duration: "30s", "2m", "1h30m", "500ms"
//   - Seconds as integer: "30" (treated as 30 seconds)
func ParseDurationString(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	var seconds int
	if _, err := fmt.Sscanf(s, "%d", &seconds); err == nil && fmt.Sprint(seconds) == s {
		return time.Duration(seconds) * time.Second, nil
	}

	return 0, fmt.Errorf("invalid duration format: %s", s)
}
