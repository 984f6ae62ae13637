// Package config loads application configuration from YAML files and
// environment variables, with hot reload support.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Rules       RulesConfig       `mapstructure:"rules"`
	Deck        DeckConfig        `mapstructure:"deck"`
	Demo        DemoConfig        `mapstructure:"demo"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// RulesConfig holds rule variant settings.
type RulesConfig struct {
	// MeeplesPerPlayer is the starting meeple stock.
	MeeplesPerPlayer int `mapstructure:"meeples_per_player"`
	// EnforceClaimedGroups rejects meeples on groups already carrying one.
	EnforceClaimedGroups bool `mapstructure:"enforce_claimed_groups"`
}

// DeckConfig holds draw pile settings.
type DeckConfig struct {
	// Shuffle controls whether the pile is shuffled after expansion.
	Shuffle bool `mapstructure:"shuffle"`
	// Seed fixes the shuffle RNG. Zero means seed from the clock.
	Seed int64 `mapstructure:"seed"`
}

// DemoConfig holds self-play demo settings.
type DemoConfig struct {
	NumPlayers int `mapstructure:"num_players"`
	// MaxTurns caps the demo; zero plays until the pile runs out.
	MaxTurns int `mapstructure:"max_turns"`
	// BoardEvery renders the board every N turns. Zero disables.
	BoardEvery int `mapstructure:"board_every"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DevelopmentConfig holds development/debug settings.
type DevelopmentConfig struct {
	VerboseEvents bool `mapstructure:"verbose_events"`
}

var (
	cfg *Config
	v   *viper.Viper
)

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("rules.meeples_per_player", 7)
	v.SetDefault("rules.enforce_claimed_groups", true)

	v.SetDefault("deck.shuffle", true)
	v.SetDefault("deck.seed", 0)

	v.SetDefault("demo.num_players", 2)
	v.SetDefault("demo.max_turns", 0)
	v.SetDefault("demo.board_every", 10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("development.verbose_events", false)
}

// Init initializes the configuration, reading an optional config file over
// the defaults. Environment variables prefixed with CARC_ override both.
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
	}

	v.SetEnvPrefix("CARC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// An explicitly named file must exist; a missing file on the default
		// search path just means defaults apply.
		if configPath != "" {
			return fmt.Errorf("error reading config file: %w", err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
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

// Validate rejects configurations the engine cannot run with.
func Validate(c *Config) error {
	if c.Rules.MeeplesPerPlayer <= 0 {
		return fmt.Errorf("rules.meeples_per_player must be positive, got %d", c.Rules.MeeplesPerPlayer)
	}
	if c.Demo.NumPlayers < 1 {
		return fmt.Errorf("demo.num_players must be at least 1, got %d", c.Demo.NumPlayers)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// Get returns the global config, initializing with defaults on first use.
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage.
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// Set applies a runtime config override.
func Set(key string, value interface{}) {
	v.Set(key, value)
	v.Unmarshal(cfg)
}

// ConfigFilePath returns the path of the loaded config file.
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot reloading of the config file.
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}
