package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	Port        string `mapstructure:"PORT"`

	// Metadata providers
	IGDBClientID string `mapstructure:"IGDB_CLIENT_ID"`
	IGDBToken    string `mapstructure:"IGDB_TOKEN"`
	RAWGAPIKey   string `mapstructure:"RAWG_API_KEY"`

	// Logging
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Title matching. SearchLimit bounds provider result sets;
	// MatchMinExactLength is the normalized-title length below which
	// containment matching falls back to exact equality.
	SearchLimit         int `mapstructure:"SEARCH_LIMIT"`
	MatchMinExactLength int `mapstructure:"MATCH_MIN_EXACT_LENGTH"`
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("SEARCH_LIMIT", 10)
	viper.SetDefault("MATCH_MIN_EXACT_LENGTH", 5)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
