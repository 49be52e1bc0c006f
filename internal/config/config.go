package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"headsuppoker-server/internal/util"
)

// Config provides configuration for the heads-up poker server
type Config struct {
	loaded bool
	Addr   string `yaml:"addr" envconfig:"addr"`
	Game   struct {
		SmallBlind    int `yaml:"smallBlind" envconfig:"small_blind"`
		BigBlind      int `yaml:"bigBlind" envconfig:"big_blind"`
		StartingChips int `yaml:"startingChips" envconfig:"starting_chips"`
	}
	Timeout struct {
		// all values are in seconds
		Join     int `yaml:"join" envconfig:"join"`
		Turn     int `yaml:"turn" envconfig:"turn"`
		Continue int `yaml:"continue" envconfig:"continue"`
	}
	LogLevel string `yaml:"logLevel" envconfig:"log_level"`
}

// JoinTimeout returns how long a connected client has to send its join message
func (c Config) JoinTimeout() time.Duration {
	return time.Duration(c.Timeout.Join) * time.Second
}

// TurnTimeout returns how long a player has to act on their turn
func (c Config) TurnTimeout() time.Duration {
	return time.Duration(c.Timeout.Turn) * time.Second
}

// ContinueTimeout returns how long a player has to answer the continue prompt
func (c Config) ContinueTimeout() time.Duration {
	return time.Duration(c.Timeout.Continue) * time.Second
}

var config Config

// DefaultConfig returns a config with every value at its default
func DefaultConfig() Config {
	var c Config
	c.Addr = ":4000"
	c.Game.SmallBlind = 5
	c.Game.BigBlind = 10
	c.Game.StartingChips = 1000
	c.Timeout.Join = 10
	c.Timeout.Turn = 45
	c.Timeout.Continue = 30
	c.LogLevel = "info"
	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The config file is optional; defaults cover every value
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("HUP_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("hup", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
