package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Storage backend names.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Config defines server configuration.
type Config struct {
	Server   ServerConfig      `yaml:"server"`
	Storage  StorageConfig     `yaml:"storage"`
	Log      LogConfig         `yaml:"log"`
	Projects map[string]string `yaml:"projects"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type StorageConfig struct {
	Backend    string `yaml:"backend"`
	CSVDir     string `yaml:"csv_dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment
// variables. The projects section maps project names to their shared
// passwords.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Backend:    BackendCSV,
			CSVDir:     "kpi_data",
			SQLitePath: "kpiboard.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Projects: map[string]string{},
	}

	if path := os.Getenv("KPIBOARD_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("KPIBOARD_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("KPIBOARD_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid KPIBOARD_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if backend := os.Getenv("KPIBOARD_STORAGE_BACKEND"); backend != "" {
		cfg.Storage.Backend = backend
	}
	if dir := os.Getenv("KPIBOARD_CSV_DIR"); dir != "" {
		cfg.Storage.CSVDir = dir
	}
	if path := os.Getenv("KPIBOARD_SQLITE_PATH"); path != "" {
		cfg.Storage.SQLitePath = path
	}
	if level := os.Getenv("KPIBOARD_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Storage.Backend != BackendCSV && cfg.Storage.Backend != BackendSQLite {
		return Config{}, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
