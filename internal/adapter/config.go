package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mmcdole/anidex/internal/cloud"
	"github.com/mmcdole/anidex/internal/feed"
	"github.com/mmcdole/anidex/internal/ingest"
)

const appName = "anidex"

// EnvPrefix prefixes environment overrides, e.g. ANIDEX_SOURCE_PATH
const EnvPrefix = "ANIDEX"

// Config holds all application configuration
type Config struct {
	Source   SourceConfig   `mapstructure:"source"`
	Featured FeaturedConfig `mapstructure:"featured"`
	Home     HomeConfig     `mapstructure:"home"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Cloud    CloudConfig    `mapstructure:"cloud"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Opener   OpenerConfig   `mapstructure:"opener"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SourceConfig locates the catalog document
type SourceConfig struct {
	Path    string        `mapstructure:"path"`    // file path or http(s) URL
	Timeout time.Duration `mapstructure:"timeout"` // load timeout
}

// FeaturedConfig selects how the featured entry is found
type FeaturedConfig struct {
	Strategy string `mapstructure:"strategy"` // "marker" or "last"
	Marker   string `mapstructure:"marker"`
}

// HomeConfig tunes the landing view
type HomeConfig struct {
	RandomCount int `mapstructure:"random_count"`
}

// FeedConfig tunes paging
type FeedConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// CloudConfig holds share link rules
type CloudConfig struct {
	HostPrefix   string `mapstructure:"host_prefix"`
	FallbackBase string `mapstructure:"fallback_base"`
}

// StorageConfig holds the settings database location
type StorageConfig struct {
	Path string `mapstructure:"path"` // empty keeps settings in memory
}

// OpenerConfig holds the link opener command
type OpenerConfig struct {
	Command string   `mapstructure:"command"` // empty for system default
	Args    []string `mapstructure:"args"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	GridColumns int `mapstructure:"grid_columns"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Path:    filepath.Join("list", "anime_list.json"),
			Timeout: 30 * time.Second,
		},
		Featured: FeaturedConfig{
			Strategy: string(ingest.StrategyMarker),
			Marker:   ingest.DefaultMarker,
		},
		Home: HomeConfig{
			RandomCount: 23,
		},
		Feed: FeedConfig{
			PageSize: feed.DefaultPageSize,
		},
		Cloud: CloudConfig{
			HostPrefix:   cloud.DefaultHostPrefix,
			FallbackBase: cloud.DefaultFallbackBase,
		},
		Storage: StorageConfig{
			Path: defaultDataPath(),
		},
		Opener: OpenerConfig{
			Args: []string{},
		},
		UI: UIConfig{
			GridColumns: 4,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), appName+".log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// newViper returns a viper instance with defaults and env overrides wired
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults registers every key so env overrides apply without a file
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("source.path", cfg.Source.Path)
	v.SetDefault("source.timeout", cfg.Source.Timeout)
	v.SetDefault("featured.strategy", cfg.Featured.Strategy)
	v.SetDefault("featured.marker", cfg.Featured.Marker)
	v.SetDefault("home.random_count", cfg.Home.RandomCount)
	v.SetDefault("feed.page_size", cfg.Feed.PageSize)
	v.SetDefault("cloud.host_prefix", cfg.Cloud.HostPrefix)
	v.SetDefault("cloud.fallback_base", cfg.Cloud.FallbackBase)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("opener.command", cfg.Opener.Command)
	v.SetDefault("opener.args", cfg.Opener.Args)
	v.SetDefault("ui.grid_columns", cfg.UI.GridColumns)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.AddConfigPath(defaultConfigPath())
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}
	return decode(v)
}

// LoadConfigFile loads configuration from an explicit file
func LoadConfigFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize replaces out-of-range values with defaults
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Home.RandomCount < 0 {
		c.Home.RandomCount = def.Home.RandomCount
	}
	if c.Feed.PageSize <= 0 {
		c.Feed.PageSize = def.Feed.PageSize
	}
	if c.UI.GridColumns <= 0 {
		c.UI.GridColumns = def.UI.GridColumns
	}
	if c.Source.Timeout <= 0 {
		c.Source.Timeout = def.Source.Timeout
	}
	c.Featured.Strategy = string(ingest.ParseStrategy(c.Featured.Strategy))
}

// IngestOptions converts the featured section to ingest options
func (c *Config) IngestOptions() ingest.Options {
	return ingest.Options{
		Strategy: ingest.ParseStrategy(c.Featured.Strategy),
		Marker:   c.Featured.Marker,
	}
}

// SaveConfig writes cfg to the default config file
func SaveConfig(cfg *Config) error {
	return SaveConfigFile(cfg, filepath.Join(defaultConfigPath(), "config.yaml"))
}

// SaveConfigFile writes cfg to path, creating its directory
func SaveConfigFile(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure snake_case key names
	v := viper.New()
	v.Set("source.path", cfg.Source.Path)
	v.Set("source.timeout", cfg.Source.Timeout.String())
	v.Set("featured.strategy", cfg.Featured.Strategy)
	v.Set("featured.marker", cfg.Featured.Marker)
	v.Set("home.random_count", cfg.Home.RandomCount)
	v.Set("feed.page_size", cfg.Feed.PageSize)
	v.Set("cloud.host_prefix", cfg.Cloud.HostPrefix)
	v.Set("cloud.fallback_base", cfg.Cloud.FallbackBase)
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("opener.command", cfg.Opener.Command)
	v.Set("opener.args", cfg.Opener.Args)
	v.Set("ui.grid_columns", cfg.UI.GridColumns)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ConfigDir returns the directory searched for config.yaml
func ConfigDir() string {
	return defaultConfigPath()
}
