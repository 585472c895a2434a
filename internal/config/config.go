package config

import (
	"github.com/spf13/viper"
)

// Config holds the server settings.
type Config struct {
	Addr          string // listen address
	StaticDir     string // frontend build directory
	DBPath        string // sqlite results file
	WinThreshold  int    // 40 classic, 30 short game
	BotDelayMinMs int    // bot think-delay lower bound
	BotDelayMaxMs int    // bot think-delay upper bound
	LogLevel      string
}

var DefaultConf = &Config{
	Addr:          ":8080",
	StaticDir:     "web/static",
	DBPath:        "./mus.db",
	WinThreshold:  40,
	BotDelayMinMs: 800,
	BotDelayMaxMs: 2000,
	LogLevel:      "info",
}

// Load reads the configuration from an optional file, layered over the
// defaults and MUS_* environment variables. An empty filename loads
// defaults only.
func Load(filename string) (*Config, error) {
	c := viper.New()

	c.SetDefault("Addr", DefaultConf.Addr)
	c.SetDefault("StaticDir", DefaultConf.StaticDir)
	c.SetDefault("DBPath", DefaultConf.DBPath)
	c.SetDefault("WinThreshold", DefaultConf.WinThreshold)
	c.SetDefault("BotDelayMinMs", DefaultConf.BotDelayMinMs)
	c.SetDefault("BotDelayMaxMs", DefaultConf.BotDelayMaxMs)
	c.SetDefault("LogLevel", DefaultConf.LogLevel)

	c.SetEnvPrefix("MUS")
	c.AutomaticEnv()

	if filename != "" {
		c.SetConfigFile(filename)
		if err := c.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	out := &Config{}
	if err := c.Unmarshal(out); err != nil {
		return nil, err
	}
	return out, nil
}
