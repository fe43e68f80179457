package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"port": 9090,
		"base_path": "/cv/",
		"cv_url": "https://example.com/me/",
		"fetch_timeout": "5s",
		"session_ttl": 60,
		"log_format": "json"
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/cv/", cfg.BasePath)
	assert.Equal(t, "https://example.com/me/", cfg.CVURL)
	assert.Equal(t, Duration(5*time.Second), cfg.FetchTimeout)
	assert.Equal(t, Duration(time.Minute), cfg.SessionTTL)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	content := `
port: 9191
base_path: /resume/
fetch_timeout: 12
session_ttl: 2h
log_level: debug
`
	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Port)
	assert.Equal(t, "/resume/", cfg.BasePath)
	assert.Equal(t, Duration(12*time.Second), cfg.FetchTimeout)
	assert.Equal(t, Duration(2*time.Hour), cfg.SessionTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Empty(t, cfg.DataDir)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("session_ttl: [1, 2]\n"), 0644))

	_, err := LoadConfig(tmpFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"fetch_timeout": "soon"}`), 0644))

	_, err := LoadConfig(tmpFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_CollectsEveryField(t *testing.T) {
	cfg := Defaults()
	cfg.Port = 70000
	cfg.LogLevel = "verbose"
	cfg.CVURL = "not a url"

	err := cfg.Validate()
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	fields := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"port", "log_level", "cv_url"}, fields)
	assert.Contains(t, err.Error(), "config error")
}

func TestValidate_BasePathShape(t *testing.T) {
	cfg := Defaults()
	cfg.BasePath = "cv"
	assert.Error(t, cfg.Validate())

	cfg.BasePath = NormalizeBasePath("cv")
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Defaults()

	partial := Config{
		Port:    9000,
		DataDir: "site",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "site", merged.DataDir)

	// Default values should fill in empty fields
	assert.Equal(t, "/", merged.BasePath)
	assert.Equal(t, "info", merged.LogLevel)
	assert.Equal(t, Duration(30*time.Second), merged.FetchTimeout)
	assert.Equal(t, Duration(24*time.Hour), merged.SessionTTL)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{DataDir: "x"}
	merged := cfg.MergeWithDefaults(Config{})
	assert.Equal(t, "x", merged.DataDir)
	assert.Zero(t, merged.Port)
}

func TestLoad_Precedence(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"port": 9090, "data_dir": "from-file", "log_level": "warn"}`), 0644))

	t.Setenv(EnvPort, "7070")
	t.Setenv(EnvBasePath, "cv")
	t.Setenv(EnvSessionTTL, "1h")
	t.Setenv(EnvFetchTimeout, "not-a-duration")

	cfg, err := Load(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)                                // env beats file
	assert.Equal(t, "from-file", cfg.DataDir)                      // file beats default
	assert.Equal(t, "warn", cfg.LogLevel)                          // file
	assert.Equal(t, "/cv/", cfg.BasePath)                          // normalized
	assert.Equal(t, Duration(time.Hour), cfg.SessionTTL)           // env
	assert.Equal(t, Duration(30*time.Second), cfg.FetchTimeout)    // unparsable env ignored
	assert.Equal(t, ":7070", cfg.ListenAddr())
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults().DataDir, cfg.DataDir)
}

func TestNormalizeBasePath(t *testing.T) {
	tests := map[string]string{
		"":      "/",
		"/":     "/",
		"cv":    "/cv/",
		"/cv":   "/cv/",
		"/cv/":  "/cv/",
		" /a/b": "/a/b/",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeBasePath(in), in)
	}
}
