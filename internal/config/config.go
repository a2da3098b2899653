package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"launchscroll/internal/eventbus"
)

// DefaultEndpoint is the public launch query endpoint
const DefaultEndpoint = "https://api.spacexdata.com/v5/launches/query"

// Config represents the application configuration
type Config struct {
	Version int         `toml:"version"`
	API     APISettings `toml:"api"`
	UI      UISettings  `toml:"ui"`
	Log     LogSettings `toml:"log"`
}

// APISettings configures the remote query API client
type APISettings struct {
	Endpoint       string                 `toml:"endpoint"`
	Timeout        Duration               `toml:"timeout"`
	UserAgent      string                 `toml:"user_agent"`
	CircuitBreaker CircuitBreakerSettings `toml:"circuit_breaker"`
}

// CircuitBreakerSettings configures fail-fast behaviour after repeated errors
type CircuitBreakerSettings struct {
	FailureThreshold uint     `toml:"failure_threshold"`
	Delay            Duration `toml:"delay"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowDetails     bool `toml:"show_details"`
	ScrollThreshold int  `toml:"scroll_threshold"` // rows from the bottom that trigger the next page
	Mouse           bool `toml:"mouse"`
}

// LogSettings configures the log file
type LogSettings struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a Go duration string ("10s")
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for the default location
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceWithBus creates a config service for path with event bus
// support. An empty path selects the default location.
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "launchscroll", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service path. A missing file yields
// the default configuration.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:     cs.filePath,
			Endpoint: cfg.API.Endpoint,
		})
	}
	return cfg, nil
}

// Save saves the configuration to the service path
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Unset keys keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks values that would make the client or UI unusable
func (c *Config) Validate() error {
	if c.API.Endpoint == "" {
		return errors.New("api.endpoint must not be empty")
	}
	if c.API.Timeout.Duration < 0 {
		return errors.New("api.timeout must not be negative")
	}
	if c.UI.ScrollThreshold < 0 {
		return errors.New("ui.scroll_threshold must not be negative")
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			Endpoint:  DefaultEndpoint,
			Timeout:   Duration{10 * time.Second},
			UserAgent: "launchscroll/1",
			CircuitBreaker: CircuitBreakerSettings{
				FailureThreshold: 3,
				Delay:            Duration{15 * time.Second},
			},
		},
		UI: UISettings{
			ShowDetails:     false,
			ScrollThreshold: 2,
			Mouse:           true,
		},
		Log: LogSettings{
			File:  "launchscroll.log",
			Level: "info",
		},
	}
}
