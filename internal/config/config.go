// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Configuration defaults.
const (
	DefaultThreshold = 0.75
	DefaultDBPath    = "~/.local/share/vocamatch/vocamatch.db"
)

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// Threshold returns the configured acceptance threshold for normalization.
func Threshold() float64 {
	if !viper.IsSet("pipeline.threshold") {
		return DefaultThreshold
	}
	return viper.GetFloat64("pipeline.threshold")
}

// CatalogPath returns the configured vocabulary catalog path.
func CatalogPath() string {
	return ExpandPath(viper.GetString("catalog.path"))
}

// DBPath returns the configured history database path.
func DBPath() string {
	path := viper.GetString("database.path")
	if path == "" {
		path = DefaultDBPath
	}
	return ExpandPath(path)
}
