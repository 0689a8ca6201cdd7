package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"recipebox/internal/eventbus"
	"recipebox/internal/logic"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

const (
	appDir         = "recipebox"
	configFileName = "config.toml"
	storeFileName  = "recipebox.db"

	DefaultBaseURL  = "https://www.themealdb.com/api/json/v1/1/"
	DefaultPageSize = 20
)

// Config represents the application configuration
type Config struct {
	Version int          `toml:"version"`
	API     APIConfig    `toml:"api"`
	Search  SearchConfig `toml:"search"`
	Store   StoreConfig  `toml:"store"`
	UI      UISettings   `toml:"ui"`
}

// APIConfig configures the recipe API client
type APIConfig struct {
	BaseURL           string   `toml:"base_url"`
	Timeout           Duration `toml:"timeout"`
	RequestsPerSecond float64  `toml:"requests_per_second"` // 0 disables rate limiting
	Burst             int      `toml:"burst"`
	UserAgent         string   `toml:"user_agent"`
	DetailCacheSize   int      `toml:"detail_cache_size"`
	DetailCacheTTL    Duration `toml:"detail_cache_ttl"`
}

// SearchConfig configures the debounced search box
type SearchConfig struct {
	Debounce      Duration `toml:"debounce"`
	CacheCapacity int      `toml:"cache_capacity"` // 0 disables the result cache
}

// StoreConfig configures local persistence
type StoreConfig struct {
	Path string `toml:"path"` // empty means next to the config file
}

// UISettings represents UI-related configuration
type UISettings struct {
	PageSize          int    `toml:"page_size"`
	DefaultSort       string `toml:"default_sort"`
	ShowThumbnailURLs bool   `toml:"show_thumbnail_urls"`
}

// Duration is a time.Duration written as a Go duration string ("300ms").
type Duration time.Duration

// Std returns d as a time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: duration %q: %v", ErrInvalid, text, err)
	}
	*d = Duration(parsed)
	return nil
}

// Validate rejects settings the app cannot run with and clamps the ones it
// can repair.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q must be an absolute URL", ErrInvalid, c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout must not be negative", ErrInvalid)
	}
	if c.API.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: api.requests_per_second must not be negative", ErrInvalid)
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("%w: search.debounce must not be negative", ErrInvalid)
	}
	if _, err := logic.ParseSortMode(c.UI.DefaultSort); err != nil {
		return fmt.Errorf("%w: ui.default_sort: %v", ErrInvalid, err)
	}

	if c.API.Burst < 1 {
		c.API.Burst = 1
	}
	if c.Search.CacheCapacity < 0 {
		c.Search.CacheCapacity = 0
	}
	if c.UI.PageSize <= 0 {
		c.UI.PageSize = DefaultPageSize
	}
	return nil
}

// StorePath resolves the database location for a config loaded from configPath
func (c *Config) StorePath(configPath string) string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(filepath.Dir(configPath), storeFileName)
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns $XDG_CONFIG_HOME/recipebox/config.toml or its platform
// equivalent.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, appDir, configFileName)
}

// NewConfigService creates a config service for the default path
func NewConfigService(bus eventbus.EventBus) ConfigService {
	return NewConfigServiceAt(DefaultPath(), bus)
}

// NewConfigServiceAt creates a config service for path. bus may be nil.
func NewConfigServiceAt(path string, bus eventbus.EventBus) ConfigService {
	return &configService{bus: bus, filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, falling back to defaults when no file exists
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if cs.bus != nil {
			cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, Default: true})
		}
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to the service's path
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads and validates configuration from a specific path.
// Keys missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APIConfig{
			BaseURL:           DefaultBaseURL,
			Timeout:           Duration(10 * time.Second),
			RequestsPerSecond: 5,
			Burst:             5,
			UserAgent:         "recipebox",
			DetailCacheSize:   128,
			DetailCacheTTL:    Duration(30 * time.Minute),
		},
		Search: SearchConfig{
			Debounce:      Duration(300 * time.Millisecond),
			CacheCapacity: 50,
		},
		UI: UISettings{
			PageSize:    DefaultPageSize,
			DefaultSort: logic.SortByName.String(),
		},
	}
}
