package config

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
default: sprintly
profiles:
  sprintly:
    baseUrl: https://sprint.ly/api/
    suffix: .json
    timeout: 10s
    auth:
      username: ${APITOPY_TEST_USER}
      password: ${APITOPY_TEST_TOKEN}
  local:
    baseUrl: https://localhost:8443/
    verifyTls: false
    ensureSlash: true
    headers:
      X-Debug: "1"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_YAML(t *testing.T) {
	t.Setenv("APITOPY_TEST_USER", "ada")
	t.Setenv("APITOPY_TEST_TOKEN", "s3cret")

	cfg, err := LoadConfig(writeFile(t, "apitopy.yaml", sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"local", "sprintly"}, cfg.Names())

	sprintly, err := cfg.Profile("")
	require.NoError(t, err)
	assert.Equal(t, "https://sprint.ly/api/", sprintly.BaseURL)
	assert.Equal(t, ".json", sprintly.Suffix)
	require.NotNil(t, sprintly.Auth)
	assert.Equal(t, "ada", sprintly.Auth.Username)
	assert.Equal(t, "s3cret", sprintly.Auth.Password)

	timeout, err := sprintly.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, timeout)

	local, err := cfg.Profile("local")
	require.NoError(t, err)
	require.NotNil(t, local.VerifyTLS)
	assert.False(t, *local.VerifyTLS)
	assert.True(t, local.EnsureSlash)
	assert.Equal(t, "1", local.Headers["X-Debug"])
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeFile(t, "apitopy.json", `{
		"profiles": {
			"only": {"baseUrl": "http://example.com/", "auth": {"token": "abc"}}
		}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	only, err := cfg.Profile("")
	require.NoError(t, err)
	assert.Equal(t, "abc", only.Auth.Token)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "bad.yaml", "profiles: [unclosed"))
		assert.ErrorContains(t, err, "failed to parse YAML config")
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "bad.json", "{"))
		assert.ErrorContains(t, err, "failed to parse JSON config")
	})

	t.Run("Invalid content", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "invalid.yaml", "profiles:\n  x:\n    suffix: .json\n"))
		var verrs ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, "profiles.x.baseUrl", verrs[0].Path)
	})
}

func TestConfig_Profile(t *testing.T) {
	cfg := &Config{Profiles: map[string]Profile{
		"a": {BaseURL: "http://a/"},
		"b": {BaseURL: "http://b/"},
	}}

	_, err := cfg.Profile("")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = cfg.Profile("c")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	b, err := cfg.Profile("b")
	require.NoError(t, err)
	assert.Equal(t, "http://b/", b.BaseURL)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", DefaultPath())

	t.Setenv(EnvConfigPath, "")
	assert.Equal(t, ".apitopy.yaml", filepath.Base(DefaultPath()))
}

func TestProfile_NewAPI(t *testing.T) {
	var gotURL, gotAuth, gotDebug string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		gotAuth = r.Header.Get("Authorization")
		gotDebug = r.Header.Get("X-Debug")
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	profile := Profile{
		BaseURL:     server.URL + "/",
		Suffix:      ".json",
		EnsureSlash: true,
		Headers:     map[string]string{"X-Debug": "1"},
		Timeout:     "5",
		Auth:        &Auth{Token: "abc"},
	}

	api, err := profile.NewAPI()
	require.NoError(t, err)
	assert.True(t, api.EnsureSlash())
	assert.Equal(t, ".json", api.Suffix())

	result, err := api.Attr("widgets").Post(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Attr("ok").Bool())
	assert.Equal(t, "/widgets/.json", gotURL)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "1", gotDebug)
}

func TestProfile_OptionsInvalidTimeout(t *testing.T) {
	_, err := Profile{BaseURL: "http://a/", Timeout: "soon"}.Options()
	assert.Error(t, err)
}

func TestParseDurationString(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{input: "", expected: 0},
		{input: "30s", expected: 30 * time.Second},
		{input: "1h30m", expected: 90 * time.Minute},
		{input: "500ms", expected: 500 * time.Millisecond},
		{input: "30", expected: 30 * time.Second},
		{input: "30x", wantErr: true},
		{input: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDurationString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}
