package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TWNOTIFY_"

// ErrMissingUsername is returned by RequireUsername when no user is configured.
var ErrMissingUsername = errors.New("username is required (--username or TWNOTIFY_USERNAME)")

// Configuration represents the twnotify configuration.
// Durations are whole seconds.
type Configuration struct {
	Username    string `koanf:"username"`
	Interval    int    `koanf:"interval" validate:"min=1,max=86400"`
	LogFile     string `koanf:"logfile"`
	Strategy    string `koanf:"strategy" validate:"oneof=batched per-channel"`
	APIBaseURL  string `koanf:"api_base_url" validate:"required,url"`
	ClientID    string `koanf:"client_id"`
	HTTPTimeout int    `koanf:"http_timeout" validate:"min=1,max=600"`
	RetryDelay  int    `koanf:"retry_delay" validate:"min=0,max=86400"`
	ListenAddr  string `koanf:"listen_addr" validate:"omitempty,hostname_port"`
	LogLevel    string `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFormat   string `koanf:"log_format" validate:"oneof=text json"`
}

// Load loads configuration from defaults, .env, the user config file, the
// given config file and the environment.
// Priority: Environment variables > Config file > User config > .env > Defaults
func Load(configPath string) (*Configuration, error) {
	return LoadWithOverrides(configPath, nil)
}

// LoadWithOverrides is Load with a final layer of explicit values, typically
// the CLI flags the user actually set.
func LoadWithOverrides(configPath string, overrides map[string]interface{}) (*Configuration, error) {
	k := koanf.New(".")

	// Apply defaults first
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	// .env only fills variables that are not already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if userPath := UserConfigPath(); userPath != "" {
		if err := loadFile(k, userPath); err != nil {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
	}

	if configPath != "" {
		configPath = expandHomePath(configPath)
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		if err := loadFile(k, configPath); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	for key, value := range overrides {
		k.Set(key, value)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.LogFile = expandHomePath(cfg.LogFile)
	cfg.Strategy = strings.ToLower(cfg.Strategy)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFile picks the parser by extension; YAML files get a syntax check
// first so errors carry a line number.
func loadFile(k *koanf.Koanf, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		if err := ValidateYAMLSyntax(path); err != nil {
			return err
		}
		return k.Load(file.Provider(path), yaml.Parser())
	default:
		return k.Load(file.Provider(path), json.Parser())
	}
}

// envTransform converts environment variable names to config keys
// Example: TWNOTIFY_LOG_LEVEL -> log_level
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// RequireUsername returns ErrMissingUsername if no username is set
func (c *Configuration) RequireUsername() error {
	if strings.TrimSpace(c.Username) == "" {
		return ErrMissingUsername
	}
	return nil
}

// PollInterval returns the pause between poll cycles
func (c *Configuration) PollInterval() time.Duration {
	return time.Duration(c.Interval) * time.Second
}

// Timeout returns the HTTP client timeout
func (c *Configuration) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// RestartDelay returns the pause before the poll loop restarts
func (c *Configuration) RestartDelay() time.Duration {
	return time.Duration(c.RetryDelay) * time.Second
}
