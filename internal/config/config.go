// Package config loads server settings from the environment and an
// optional YAML file. Every key has a default, so a bare binary runs.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds everything the serve command needs. Environment variables
// use the ACTIVITYHUB_ prefix (ACTIVITYHUB_ADDR, ACTIVITYHUB_DATA_FILE,
// ACTIVITYHUB_MAX_UPLOAD_BYTES, ACTIVITYHUB_LOG_LEVEL,
// ACTIVITYHUB_LOG_JSON).
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// DataFile is a workbook preloaded on startup. Pointing at a missing
	// file is fine; the server just starts empty. Empty disables the
	// preload entirely.
	DataFile string

	// MaxUploadBytes caps the body size of workbook uploads.
	MaxUploadBytes int64

	LogLevel string
	LogJSON  bool
}

func Load(file string) (Config, error) {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("data_file", "data/school_activities.xlsx")
	v.SetDefault("max_upload_bytes", 10<<20)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)

	v.SetEnvPrefix("ACTIVITYHUB")
	// An empty value must count as set: ACTIVITYHUB_DATA_FILE= disables
	// the startup preload.
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := Config{
		Addr:           v.GetString("addr"),
		DataFile:       v.GetString("data_file"),
		MaxUploadBytes: v.GetInt64("max_upload_bytes"),
		LogLevel:       v.GetString("log_level"),
		LogJSON:        v.GetBool("log_json"),
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}
