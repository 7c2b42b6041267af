package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server     Server     `mapstructure:"server"`
	Logger     Logger     `mapstructure:"logger"`
	Database   Database   `mapstructure:"database"`
	MarketData MarketData `mapstructure:"marketdata"`
	Calculator Calculator `mapstructure:"calculator"`
}

// Server holds the configuration for the HTTP API server.
type Server struct {
	Port int `mapstructure:"port"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Database holds the configuration for the calculation history store.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// MarketData holds the configuration for the public quote client.
type MarketData struct {
	BaseURL        string  `mapstructure:"base_url"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Calculator holds the configuration for the position-sizing calculator.
// TargetMultiples are extra reward multiples the CLI prints in addition to
// the 1:1 and 2:1 targets every result carries.
type Calculator struct {
	TargetMultiples []float64 `mapstructure:"target_multiples"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or yaml, json

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("database.dsn", "rizzk.db")
	viper.SetDefault("marketdata.base_url", "https://api.binance.com/api/v3")
	viper.SetDefault("marketdata.rate_limit", 10)      // requests per second
	viper.SetDefault("marketdata.rate_limit_burst", 5) // burst size
	viper.SetDefault("calculator.target_multiples", []float64{3})

	// A missing config file is fine: defaults plus environment cover it.
	if err = viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
