package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	TopN            int           `mapstructure:"top_n"`
	Profile         string        `mapstructure:"profile"`
	ProfilesPath    string        `mapstructure:"profiles_path"`
}

// LoadConfig reads the application config file (yaml) at path.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("addr", ":8080")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("top_n", 5)
	v.SetDefault("profile", "default")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
