package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/apitopy"
	"github.com/wesleyorama2/apitopy/config"
	"github.com/wesleyorama2/apitopy/internal/logging"
	"github.com/wesleyorama2/apitopy/internal/output"
)

// session is the per-invocation state derived from the global flags.
type session struct {
	api       *apitopy.API
	formatter *output.Formatter
	logger    *slog.Logger
	closeLog  func() error
}

func (s *session) Close() error {
	if s.closeLog == nil {
		return nil
	}
	return s.closeLog()
}

// loadConfig reads the profile file. A missing file at the default location
// yields nil without error; an explicit --config must exist.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	path := o.configPath
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath()
		explicit = os.Getenv(config.EnvConfigPath) != ""
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return cfg, nil
}

// resolveProfile picks the named profile, or an empty one when no config
// file exists and no profile was requested.
func (o *globalOptions) resolveProfile() (config.Profile, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return config.Profile{}, err
	}
	if cfg == nil {
		if o.profile != "" {
			return config.Profile{}, fmt.Errorf("%w: %s (no config file)", config.ErrProfileNotFound, o.profile)
		}
		return config.Profile{}, nil
	}
	profile, err := cfg.Profile(o.profile)
	if err != nil && o.profile == "" && o.baseURL != "" {
		// --base-url alone does not need a profile
		return config.Profile{}, nil
	}
	return profile, err
}

// newSession applies flag overrides on top of the selected profile.
func (o *globalOptions) newSession(cmd *cobra.Command) (*session, error) {
	format, err := output.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = o.logLevel
	logCfg.FilePath = o.logFile
	logCfg.Stderr = cmd.ErrOrStderr()
	logger, closeLog, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}

	profile, err := o.resolveProfile()
	if err != nil {
		closeLog()
		return nil, err
	}

	api, err := o.buildAPI(cmd, profile, logger)
	if err != nil {
		closeLog()
		return nil, err
	}

	noColor := !colorEnabled(cmd.OutOrStdout(), o.noColor)
	verbose := o.verbose || profile.Verbose
	return &session{
		api:       api,
		formatter: output.NewFormatter(format, verbose, noColor),
		logger:    logger,
		closeLog:  closeLog,
	}, nil
}

func (o *globalOptions) buildAPI(cmd *cobra.Command, profile config.Profile, logger *slog.Logger) (*apitopy.API, error) {
	flags := cmd.Flags()

	if o.baseURL != "" {
		profile.BaseURL = o.baseURL
	}
	if profile.BaseURL == "" {
		return nil, errors.New("no base URL: pass --base-url or configure a profile")
	}
	if !strings.HasSuffix(profile.BaseURL, "/") {
		profile.BaseURL += "/"
	}
	if flags.Changed("suffix") {
		profile.Suffix = o.suffix
	}
	if flags.Changed("ensure-slash") {
		profile.EnsureSlash = o.ensureSlash
	}
	if o.verbose {
		profile.Verbose = true
	}
	if o.insecure {
		verify := false
		profile.VerifyTLS = &verify
	}
	if flags.Changed("timeout") || profile.Timeout == "" {
		profile.Timeout = o.timeout.String()
	}

	headers, err := parseHeaders(o.headers)
	if err != nil {
		return nil, err
	}
	if len(headers) > 0 {
		merged := make(map[string]string, len(profile.Headers)+len(headers))
		for k, v := range profile.Headers {
			merged[k] = v
		}
		for k, v := range headers {
			merged[k] = v
		}
		profile.Headers = merged
	}

	switch {
	case o.token != "":
		profile.Auth = &config.Auth{Token: o.token}
	case o.user != "":
		username, password, _ := strings.Cut(o.user, ":")
		profile.Auth = &config.Auth{Username: username, Password: password}
	}

	noColor := !colorEnabled(cmd.OutOrStdout(), o.noColor)
	trace := &traceWriter{
		out:       cmd.OutOrStdout(),
		formatter: output.NewFormatter(output.FormatText, false, noColor),
	}
	return profile.NewAPI(
		apitopy.WithLogger(logger),
		apitopy.WithTraceWriter(trace),
	)
}

// parseHeaders parses "Name: value" flags.
func parseHeaders(values []string) (map[string]string, error) {
	headers := make(map[string]string, len(values))
	for _, header := range values {
		name, value, ok := strings.Cut(header, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header %q (want \"Name: value\")", header)
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return headers, nil
}

func colorEnabled(w io.Writer, noColor bool) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return output.ColorEnabled(f, noColor)
}

// traceWriter colors the "VERB URL" lines the API writes in verbose mode.
type traceWriter struct {
	out       io.Writer
	formatter *output.Formatter
}

func (w *traceWriter) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	verb, url, ok := strings.Cut(line, " ")
	if !ok {
		return w.out.Write(p)
	}
	if _, err := io.WriteString(w.out, w.formatter.FormatTrace(verb, url)); err != nil {
		return 0, err
	}
	return len(p), nil
}
