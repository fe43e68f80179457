// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvPort         = "CV_SITE_PORT"
	EnvBasePath     = "CV_SITE_BASE_PATH"
	EnvDataDir      = "CV_SITE_DATA_DIR"
	EnvCVURL        = "CV_SITE_CV_URL"
	EnvFetchTimeout = "CV_SITE_FETCH_TIMEOUT"
	EnvLogLevel     = "CV_SITE_LOG_LEVEL"
	EnvLogFormat    = "CV_SITE_LOG_FORMAT"
	EnvSessionTTL   = "CV_SITE_SESSION_TTL"
	EnvOutDir       = "CV_SITE_OUT_DIR"
)

// Duration is a time.Duration written as a Go duration string in JSON ("10s").
type Duration time.Duration

// UnmarshalJSON accepts a duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("duration must be a string or number of seconds: %w", err)
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// UnmarshalYAML accepts a duration string or a number of seconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!int" || value.Tag == "!!float" {
		var secs float64
		if err := value.Decode(&secs); err != nil {
			return err
		}
		*d = Duration(time.Duration(secs * float64(time.Second)))
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string or number of seconds: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalJSON writes the duration string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config represents the service configuration. Every field is optional in a
// config file; missing values come from the environment or defaults.
type Config struct {
	// Server
	Port     int    `json:"port,omitempty" yaml:"port,omitempty" validate:"min=0,max=65535"`
	BasePath string `json:"base_path,omitempty" yaml:"base_path,omitempty" validate:"omitempty,startswith=/,endswith=/"`

	// Document source
	DataDir      string   `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`                      // Directory holding cv.json and img/
	CVURL        string   `json:"cv_url,omitempty" yaml:"cv_url,omitempty" validate:"omitempty,url"` // Base URL to fetch cv.json from instead of DataDir
	FetchTimeout Duration `json:"fetch_timeout,omitempty" yaml:"fetch_timeout,omitempty" validate:"min=0"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,oneof=text json"`

	// Sessions
	SessionTTL Duration `json:"session_ttl,omitempty" yaml:"session_ttl,omitempty" validate:"min=0"`

	// Static build
	OutDir string `json:"out_dir,omitempty" yaml:"out_dir,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:         8080,
		BasePath:     "/",
		DataDir:      "public",
		FetchTimeout: Duration(30 * time.Second),
		LogLevel:     "info",
		LogFormat:    "text",
		SessionTTL:   Duration(24 * time.Hour),
		OutDir:       "dist",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv reads the CV_SITE_* environment variables. Unset or unparsable
// variables leave the field empty.
func FromEnv() Config {
	return Config{
		Port:         getEnvInt(EnvPort, 0),
		BasePath:     getEnvString(EnvBasePath, ""),
		DataDir:      getEnvString(EnvDataDir, ""),
		CVURL:        getEnvString(EnvCVURL, ""),
		FetchTimeout: Duration(getEnvDuration(EnvFetchTimeout, 0)),
		LogLevel:     getEnvString(EnvLogLevel, ""),
		LogFormat:    getEnvString(EnvLogFormat, ""),
		SessionTTL:   Duration(getEnvDuration(EnvSessionTTL, 0)),
		OutDir:       getEnvString(EnvOutDir, ""),
	}
}

// Load resolves the configuration in order of precedence: environment, then
// the optional config file, then defaults. Flags are applied by the caller.
func Load(path string) (Config, error) {
	base := Defaults()
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		base = fileCfg.MergeWithDefaults(base)
	}
	env := FromEnv()
	cfg := env.MergeWithDefaults(base)
	cfg.BasePath = NormalizeBasePath(cfg.BasePath)
	return cfg, nil
}

// FieldError is one failed validation rule.
type FieldError struct {
	Field string
	Rule  string
	Value any
}

// ValidationError aggregates every failed rule of a config.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("'%s' failed %q (value %v)", fe.Field, fe.Rule, fe.Value))
	}
	return "config error: " + strings.Join(parts, "; ")
}

var validate = validator.New()

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config error: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{
			Field: jsonName(fe.StructField()),
			Rule:  fe.Tag(),
			Value: fe.Value(),
		})
	}
	return out
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer env over file over built-in values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.BasePath == "" {
		result.BasePath = defaults.BasePath
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.CVURL == "" {
		result.CVURL = defaults.CVURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.FetchTimeout == 0 {
		result.FetchTimeout = defaults.FetchTimeout
	}
	if result.SessionTTL == 0 {
		result.SessionTTL = defaults.SessionTTL
	}

	return result
}

// ListenAddr returns the address the server binds to.
func (c Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

// NormalizeBasePath makes a base path start and end with a slash.
func NormalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

func jsonName(structField string) string {
	switch structField {
	case "BasePath":
		return "base_path"
	case "DataDir":
		return "data_dir"
	case "CVURL":
		return "cv_url"
	case "FetchTimeout":
		return "fetch_timeout"
	case "LogLevel":
		return "log_level"
	case "LogFormat":
		return "log_format"
	case "SessionTTL":
		return "session_ttl"
	case "OutDir":
		return "out_dir"
	}
	return strings.ToLower(structField)
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
