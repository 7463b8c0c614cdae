package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port       string `mapstructure:"PORT"`
	DBUrl      string `mapstructure:"DB_URL"`
	RedisUrl   string `mapstructure:"REDIS_URL"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`
	LogFormat  string `mapstructure:"LOG_FORMAT"`
	CampusFile string `mapstructure:"CAMPUS_FILE"`
	FloorsFile string `mapstructure:"FLOORS_FILE"`
}

var configKeys = []string{"PORT", "DB_URL", "REDIS_URL", "LOG_LEVEL", "LOG_FORMAT", "CAMPUS_FILE", "FLOORS_FILE"}

// LoadConfig reads .env.<APP_ENV> from dir, overridden by environment variables
func LoadConfig(dir string) (c Config, err error) {
	// Get environment type from ENV variable or use development as default
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	v := viper.New()

	v.SetDefault("PORT", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetConfigName(fmt.Sprintf(".env.%s", env))
	v.SetConfigType("env")
	v.AddConfigPath(dir)

	// Environment variables take precedence over config file
	v.AutomaticEnv()
	for _, key := range configKeys {
		// Unmarshal only sees env vars for keys viper already knows
		if err := v.BindEnv(key); err != nil {
			return c, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// Continue even if file is not found
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, fmt.Errorf("failed to read config: %w", err)
		}
	}

	err = v.Unmarshal(&c)
	return
}
