// Package config loads AutoCare settings from defaults, an optional YAML
// file, AUTOCARE_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/autocare/autocare/internal/logging"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "AUTOCARE"

// Config is the complete AutoCare configuration.
type Config struct {
	DB     DBConfig     `mapstructure:"db"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
	Engine EngineConfig `mapstructure:"engine"`
	LLM    LLMConfig    `mapstructure:"llm"`
}

// DBConfig locates the SQLite database. An empty path selects the XDG default.
type DBConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// EngineConfig holds request defaults and an optional catalog override.
type EngineConfig struct {
	DefaultRegion     string `mapstructure:"default_region"`
	DefaultLanguage   string `mapstructure:"default_language"`
	DefaultVehicleAge int    `mapstructure:"default_vehicle_age"`
	DefaultMileage    int    `mapstructure:"default_mileage"`
	CatalogPath       string `mapstructure:"catalog_path"`
}

// LLMConfig enables the second opinion. API keys are read by the llm
// package from the environment.
type LLMConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Provider string `mapstructure:"provider"`
}

var defaults = map[string]any{
	"db.path":                    "",
	"log.level":                  "info",
	"log.format":                 "text",
	"server.addr":                ":8080",
	"server.read_timeout":        "15s",
	"server.write_timeout":       "30s",
	"engine.default_region":      "Nigeria",
	"engine.default_language":    "en",
	"engine.default_vehicle_age": 5,
	"engine.default_mileage":     50000,
	"engine.catalog_path":        "",
	"llm.enabled":                false,
	"llm.provider":               "",
}

// New returns a viper instance with defaults, env binding and config search
// paths registered. A non-empty configFile is read instead of searching.
func New(configFile string) *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		return v
	}
	v.SetConfigName("autocare")
	v.SetConfigType("yaml")
	for _, dir := range searchPaths() {
		v.AddConfigPath(dir)
	}
	return v
}

func searchPaths() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "autocare"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "autocare"))
	}
	return dirs
}

// Load reads the config file if one exists and unmarshals v. A missing file
// in the search paths is not an error; a missing explicit file is.
func Load(v *viper.Viper) (*Config, error) {
	// Flags, overrides and AUTOCARE_DB_PATH are all visible before the file
	// is read.
	explicitDB := v.GetString("db.path")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		logging.New("config").Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	// AUTOCARE_DB is the documented short form of AUTOCARE_DB_PATH and, like
	// any env override, ranks above the file but below flags.
	if explicitDB == "" {
		if p := os.Getenv(EnvPrefix + "_DB"); p != "" {
			v.Set("db.path", p)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		Server: ServerConfig{Addr: ":8080", ReadTimeout: 15 * time.Second, WriteTimeout: 30 * time.Second},
		Engine: EngineConfig{
			DefaultRegion:     "Nigeria",
			DefaultLanguage:   "en",
			DefaultVehicleAge: 5,
			DefaultMileage:    50000,
		},
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var problems []string
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format %q", c.Log.Format))
	}
	if c.Server.Addr == "" {
		problems = append(problems, "server.addr is empty")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		problems = append(problems, "server timeouts must not be negative")
	}
	if c.Engine.DefaultVehicleAge < 0 || c.Engine.DefaultMileage < 0 {
		problems = append(problems, "engine defaults must not be negative")
	}
	switch c.LLM.Provider {
	case "", "anthropic", "openai", "openrouter", "gemini", "mock":
	default:
		problems = append(problems, fmt.Sprintf("unknown llm.provider %q", c.LLM.Provider))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
