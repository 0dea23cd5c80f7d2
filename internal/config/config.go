package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/duncanmcewan/marchlands/internal/game/resource"
)

// Config holds all configuration for the application. Formula tables (track
// costs, durations, yields) live in code; config carries the tunables around
// them plus logging and client settings.
type Config struct {
	Engine     EngineConfig     `mapstructure:"engine"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Client     ClientConfig     `mapstructure:"client"`
}

// EngineConfig holds engine seeding settings.
type EngineConfig struct {
	StartingResources map[string]int `mapstructure:"starting_resources"`
	FogOfWar          bool           `mapstructure:"fog_of_war"`
	MapPath           string         `mapstructure:"map_path"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SimulationConfig holds defaults for the scripted simulation runner.
type SimulationConfig struct {
	Turns       int    `mapstructure:"turns"`
	CharacterID string `mapstructure:"character_id"`
}

// ClientConfig holds console client settings.
type ClientConfig struct {
	ShowEventLog bool `mapstructure:"show_event_log"`
}

var (
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault.
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("engine.starting_resources.gold", 500)
	v.SetDefault("engine.starting_resources.wood", 300)
	v.SetDefault("engine.starting_resources.stone", 100)
	v.SetDefault("engine.starting_resources.iron", 50)
	v.SetDefault("engine.starting_resources.wool", 50)
	v.SetDefault("engine.starting_resources.leather", 20)
	v.SetDefault("engine.starting_resources.horses", 10)
	v.SetDefault("engine.fog_of_war", true)
	v.SetDefault("engine.map_path", "data/map.yaml")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("simulation.turns", 30)
	v.SetDefault("simulation.character_id", "")

	v.SetDefault("client.show_event_log", false)
}

// Init loads configuration from a file (optional), environment variables
// with the MARCH prefix, and baked-in defaults.
func Init(configPath string) error {
	v = viper.New()
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/marchlands")
	}

	v.SetEnvPrefix("MARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if configPath == "" {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
		// Config file not found; defaults stand.
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Get returns the global config instance, initializing with defaults on
// first use.
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// WatchConfig enables hot-reloading of the config file.
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// ConfigFilePath returns the path of the loaded config file.
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// Validate checks the configuration values.
func Validate(c *Config) error {
	for name, amount := range c.Engine.StartingResources {
		if amount < 0 {
			return fmt.Errorf("engine.starting_resources.%s must be non-negative", name)
		}
		if !knownResource(name) {
			return fmt.Errorf("engine.starting_resources.%s is not a resource", name)
		}
	}
	if c.Simulation.Turns < 1 {
		return fmt.Errorf("simulation.turns must be at least 1")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}
	return nil
}

func knownResource(name string) bool {
	up := strings.ToUpper(name)
	for _, k := range resource.Kinds {
		if string(k) == up {
			return true
		}
	}
	return false
}

// StartingStockpile converts the configured starting resources to a
// stockpile value. Population is always derived, never seeded from config.
func (c *Config) StartingStockpile() resource.Stockpile {
	out := resource.Stockpile{}
	for name, amount := range c.Engine.StartingResources {
		k := resource.Kind(strings.ToUpper(name))
		if k == resource.Population {
			continue
		}
		out[k] = amount
	}
	return out
}
