// Package config loads the tool's configuration from environment variables
// and bound command-line flags.
package config

import (
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the effective configuration values for one invocation.
type Config struct {
	OutputDir string
	GitPath   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from the environment (prefix PP_) and any viper
// keys bound to flags, and applies defaults. It uses the Viper library to
// handle configuration loading and precedence.
func Load() *Config {
	viper.SetEnvPrefix("PP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("OUTPUT_DIR", ".")
	viper.SetDefault("GIT_PATH", "git")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")

	// Parse the log level string into a slog.Level type.
	var logLevel slog.Level
	logLevelStr := strings.ToLower(viper.GetString("LOG_LEVEL"))
	switch logLevelStr {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		slog.Warn("unrecognized log level, defaulting to info", "provided", logLevelStr)
		logLevel = slog.LevelInfo
	}

	return &Config{
		OutputDir: viper.GetString("OUTPUT_DIR"),
		GitPath:   viper.GetString("GIT_PATH"),
		LogLevel:  logLevel,
		LogFormat: viper.GetString("LOG_FORMAT"),
	}
}
