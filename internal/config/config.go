package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Console  ConsoleConfig
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
}

// ConsoleConfig configures the client console and its gateway.
type ConsoleConfig struct {
	APIBaseURL        string
	HTTPTimeout       time.Duration
	LowStockThreshold int
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("API_TIMEOUT", "10s")
	viper.SetDefault("LOW_STOCK_THRESHOLD", 10)
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "factoria")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "factoria")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("LOG_LEVEL", "info")

	apiTimeout, err := time.ParseDuration(viper.GetString("API_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Console: ConsoleConfig{
			APIBaseURL:        viper.GetString("API_BASE_URL"),
			HTTPTimeout:       apiTimeout,
			LowStockThreshold: viper.GetInt("LOW_STOCK_THRESHOLD"),
		},
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
