package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Exchange ExchangeConfig `mapstructure:"exchange"`
	Screener ScreenerConfig `mapstructure:"screener"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type ExchangeConfig struct {
	BaseURL        string  `mapstructure:"base_url"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
	RequestsPerSec float64 `mapstructure:"requests_per_sec"`
	DepthLimit     int     `mapstructure:"depth_limit"`
}

type ScreenerConfig struct {
	MaxSortKeys     int      `mapstructure:"max_sort_keys"`
	DefaultSort     []string `mapstructure:"default_sort"`
	SearchFields    []string `mapstructure:"search_fields"`
	DebounceMS      int      `mapstructure:"debounce_ms"`
	RefreshInterval int      `mapstructure:"refresh_interval_seconds"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load(configPath string) (*Config, error) {
	// A .env file, when present, seeds the process environment before
	// viper reads it.
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/marketlens")
	}

	v.SetEnvPrefix("MARKETLENS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults and environment
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&config)

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8080)

	// Exchange defaults
	v.SetDefault("exchange.base_url", "https://api.exchange.example.com")
	v.SetDefault("exchange.timeout_seconds", 10)
	v.SetDefault("exchange.requests_per_sec", 5)
	v.SetDefault("exchange.depth_limit", 100)

	// Screener defaults
	v.SetDefault("screener.max_sort_keys", 2)
	v.SetDefault("screener.default_sort", []string{"volume:desc"})
	v.SetDefault("screener.search_fields", []string{"pair", "ticker_id", "base", "target"})
	v.SetDefault("screener.debounce_ms", 300)
	v.SetDefault("screener.refresh_interval_seconds", 30)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func overrideFromEnv(config *Config) {
	if baseURL := os.Getenv("EXCHANGE_BASE_URL"); baseURL != "" {
		config.Exchange.BaseURL = baseURL
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}
