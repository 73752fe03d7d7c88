package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// DefaultListName names the list created when the store is empty.
const DefaultListName = "My Tasks"

// Settings represents the contents of config.yaml.
type Settings struct {
	Backend         string        `yaml:"backend"`
	DataPath        string        `yaml:"data_path"`
	Redis           RedisSettings `yaml:"redis"`
	DefaultListName string        `yaml:"default_list_name"`
	ShowCompleted   bool          `yaml:"show_completed"`
	Log             LogSettings   `yaml:"log"`
}

// RedisSettings configures the redis backend.
type RedisSettings struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// LogSettings configures diagnostics on stderr.
type LogSettings struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Backend:         BackendBolt,
		DefaultListName: DefaultListName,
		Redis: RedisSettings{
			Addr:   "localhost:6379",
			Prefix: "todo:",
		},
		Log: LogSettings{
			Level:    "warn",
			Encoding: "console",
		},
	}
}

// LoadSettings reads config.yaml (if present), then the .env file in the
// config directory (if present), then TODO_* environment variables.
// Later sources win. A malformed config.yaml is an error; a missing one is not.
func (c *Config) LoadSettings() error {
	settings := DefaultSettings()

	data, err := os.ReadFile(c.SettingsPath())
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return fmt.Errorf("invalid %s: %w", SettingsFile, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// defaults
	default:
		return fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}

	// godotenv never overrides variables that are already set
	if err := godotenv.Load(c.EnvPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("invalid %s: %w", EnvFile, err)
	}

	settings.applyEnv()
	settings.applyDefaults()

	if err := settings.validate(); err != nil {
		return err
	}

	c.Settings = settings
	return nil
}

func (s *Settings) applyEnv() {
	s.Backend = getString("TODO_BACKEND", s.Backend)
	s.DataPath = getString("TODO_DATA_PATH", s.DataPath)
	s.Redis.Addr = getString("TODO_REDIS_ADDR", s.Redis.Addr)
	s.Redis.Password = getString("TODO_REDIS_PASSWORD", s.Redis.Password)
	s.Redis.DB = getInt("TODO_REDIS_DB", s.Redis.DB)
	s.Redis.Prefix = getString("TODO_REDIS_PREFIX", s.Redis.Prefix)
	s.DefaultListName = getString("TODO_DEFAULT_LIST", s.DefaultListName)
	s.ShowCompleted = getBool("TODO_SHOW_COMPLETED", s.ShowCompleted)
	s.Log.Level = getString("TODO_LOG_LEVEL", s.Log.Level)
	s.Log.Encoding = getString("TODO_LOG_ENCODING", s.Log.Encoding)
}

// applyDefaults fills in values left empty by the file.
func (s *Settings) applyDefaults() {
	def := DefaultSettings()
	if s.Backend == "" {
		s.Backend = def.Backend
	}
	if strings.TrimSpace(s.DefaultListName) == "" {
		s.DefaultListName = def.DefaultListName
	}
	if s.Redis.Addr == "" {
		s.Redis.Addr = def.Redis.Addr
	}
	if s.Redis.Prefix == "" {
		s.Redis.Prefix = def.Redis.Prefix
	}
	if s.Log.Level == "" {
		s.Log.Level = def.Log.Level
	}
	if s.Log.Encoding == "" {
		s.Log.Encoding = def.Log.Encoding
	}
}

func (s *Settings) validate() error {
	switch s.Backend {
	case BackendBolt, BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown backend: %s", s.Backend)
	}
	if s.Redis.DB < 0 {
		return fmt.Errorf("invalid redis db: %d", s.Redis.DB)
	}
	return nil
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}
