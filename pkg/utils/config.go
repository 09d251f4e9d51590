package utils

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Reservation ReservationConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// ReservationConfig tunes the booking core. The cutoff is explicit
// configuration rather than a constant buried in the engine.
type ReservationConfig struct {
	CancelCutoffHours int
	MaxRetries        int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CANCEL_CUTOFF_HOURS", 3)
	viper.SetDefault("BOOKING_MAX_RETRIES", 5)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Reservation: ReservationConfig{
			CancelCutoffHours: viper.GetInt("CANCEL_CUTOFF_HOURS"),
			MaxRetries:        viper.GetInt("BOOKING_MAX_RETRIES"),
		},
	}

	if config.Reservation.CancelCutoffHours < 0 {
		return nil, fmt.Errorf("CANCEL_CUTOFF_HOURS must not be negative")
	}
	if config.Reservation.MaxRetries < 1 {
		return nil, fmt.Errorf("BOOKING_MAX_RETRIES must be at least 1")
	}

	return config, nil
}
