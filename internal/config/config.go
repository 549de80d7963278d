package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"eterea/internal/logger"
)

const (
	DefaultBatchSize = 1000
	DefaultLogLevel  = "info"
	DefaultTopTags   = 10
)

type Config struct {
	DatabasePath string `yaml:"database"`   // SQLite file, ~ is expanded
	BatchSize    int    `yaml:"batch_size"` // bookmarks per insert transaction
	LogLevel     string `yaml:"log_level"`  // "debug" | "info" | "warn" | "error"
	PrettyLog    bool   `yaml:"pretty_log"` // true => zap dev (color), false => zap prod (JSON)
	TopTags      int    `yaml:"top_tags"`   // tags shown by stats
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		DatabasePath: DefaultDatabasePath(),
		BatchSize:    DefaultBatchSize,
		LogLevel:     DefaultLogLevel,
		PrettyLog:    true,
		TopTags:      DefaultTopTags,
	}
}

// Load resolves the configuration from defaults, the YAML config file,
// a .env file in the working directory and ETEREA_* environment variables,
// in increasing order of precedence.
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	// .env never overrides variables that are already set
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := Default()
	if err := LoadFile(FilePath(), &cfg); err != nil {
		return nil, err
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.DatabasePath = ExpandHome(cfg.DatabasePath)
	return &cfg, nil
}

// LoadFile overlays the YAML file at path onto cfg. A missing file is not an error.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is empty")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.TopTags < 0 {
		return fmt.Errorf("top tags must not be negative, got %d", c.TopTags)
	}
	return nil
}

// FilePath returns $ETEREA_CONFIG, falling back to the XDG config location
func FilePath() string {
	if p := os.Getenv("ETEREA_CONFIG"); p != "" {
		return ExpandHome(p)
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "eterea", "config.yaml")
}

// DefaultDatabasePath returns the XDG data location of the bookmark database
func DefaultDatabasePath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "eterea", "bookmarks.db")
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("ETEREA_DB"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("ETEREA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if err := envInt("ETEREA_BATCH_SIZE", &cfg.BatchSize); err != nil {
		return err
	}
	if err := envInt("ETEREA_TOP_TAGS", &cfg.TopTags); err != nil {
		return err
	}
	return envBool("ETEREA_PRETTY_LOG", &cfg.PrettyLog)
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func envBool(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
	*dst = b
	return nil
}
