package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	Editor  EditorConfig  `mapstructure:"editor"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port    string `mapstructure:"port"`
	BaseURL string `mapstructure:"base_url"`
}

// StoreConfig holds the key-value store configuration.
type StoreConfig struct {
	Driver      string `mapstructure:"driver"` // "sqlite", "sqlite3", "mysql" or "memory"
	DSN         string `mapstructure:"dsn"`
	PagesKey    string `mapstructure:"pages_key"`
	EditModeKey string `mapstructure:"editmode_key"`
}

// EditorConfig holds settings for the in-place editor.
type EditorConfig struct {
	Sanitize bool `mapstructure:"sanitize"`
}

// SessionConfig holds settings for the browser session used for notices.
type SessionConfig struct {
	Lifetime int `mapstructure:"lifetime"` // hours
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // e.g., "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // e.g., "json", "console"
	File   string `mapstructure:"file"`   // optional rotating log file
}

// LoadConfig reads configuration from a .env file, a config file and environment variables.
func LoadConfig() (*Config, error) {
	// A missing .env is fine; variables may come from the real environment.
	_ = godotenv.Load()

	// Set default values
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.base_url", "http://localhost:8080")
	viper.SetDefault("store.driver", "sqlite")
	viper.SetDefault("store.dsn", "wiki.db")
	viper.SetDefault("store.pages_key", "wiki_federation_data_v1")
	viper.SetDefault("store.editmode_key", "wiki_federation_editmode_v1")
	viper.SetDefault("editor.sanitize", true)
	viper.SetDefault("session.lifetime", 24)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.file", "")

	// Set up viper to read from config file
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/tabwiki/")
	viper.AddConfigPath("$HOME/.tabwiki")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, err
		}
		// Config file not found; proceed with defaults and env vars
	}

	// Set up viper to read from environment variables
	viper.SetEnvPrefix("WIKI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Unmarshal the config into the Config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
