package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

// AppConfig holds process-level settings: logging and where run history lives.
// An empty HistoryDatabasePath means lexigen_history.db inside DataDir.
type AppConfig struct {
	LogLevel            string `json:"log_level"`
	DataDir             string `json:"data_dir"`
	HistoryDatabasePath string `json:"history_database_path"`
	RecordHistory       bool   `json:"record_history"`
}

// ModelConfig holds the defaults used to build and run a model.
type ModelConfig struct {
	WindowLength   int    `json:"window_length"`
	Seed           *int64 `json:"seed,omitempty"`
	GenerateLength int    `json:"generate_length"`
	InitialText    string `json:"initial_text"`
	CorpusPath     string `json:"corpus_path"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	App   *AppConfig   `json:"app_config"`
	Model *ModelConfig `json:"model_config"`
}

// DefaultAppConfig creates an app configuration with default values.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		LogLevel:      "info",
		DataDir:       "./data",
		RecordHistory: true,
	}
}

// DefaultModelConfig creates a model configuration with default values. No
// seed is set, so generation differs from run to run.
func DefaultModelConfig() *ModelConfig {
	return &ModelConfig{
		WindowLength:   4,
		GenerateLength: 200,
	}
}

// DefaultConfig returns a Config with every section set to its defaults.
func DefaultConfig() *Config {
	return &Config{
		App:   DefaultAppConfig(),
		Model: DefaultModelConfig(),
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, create it with the default config.
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The defaults are still usable without a file on disk.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config == nil {
		config = DefaultConfig()
	}
	// A section missing from the file decodes as null; fall back to defaults.
	if config.App == nil {
		config.App = DefaultAppConfig()
	}
	if config.Model == nil {
		config.Model = DefaultModelConfig()
	}

	return config, nil
}

// parseLogLevel maps a config string onto a slog level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
