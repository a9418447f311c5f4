package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Logging  LoggingConfig  `json:"logging"`
}

type ServerConfig struct {
	Addr string `json:"addr"`
}

// DatabaseConfig selects the storage engine. Driver is "sqlite"
// (default, Path points at the database file) or "postgres" (the
// remaining fields form the DSN).
type DatabaseConfig struct {
	Driver   string `json:"driver"`
	Path     string `json:"path"`
	Host     string `json:"host"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	Port     int    `json:"port"`
	SSLMode  string `json:"sslmode"`
}

type LoggingConfig struct {
	Level     string `json:"level"`
	File      string `json:"file"`
	GormLevel string `json:"gorm_level"`
}

func Default() Config {
	return Config{
		Server:   ServerConfig{Addr: ":8080"},
		Database: DatabaseConfig{Driver: "sqlite", Path: "data/words.db"},
	}
}

// Load reads the JSON config file and applies PORTAL_* environment
// overrides on top. A missing file is not an error; defaults apply.
func Load(filename string) (Config, error) {
	cfg := Default()

	if filename != "" {
		file, err := os.Open(filename)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// defaults plus environment only
		case err != nil:
			return cfg, fmt.Errorf("failed to open config file: %w", err)
		default:
			defer file.Close()
			if err := json.NewDecoder(file).Decode(&cfg); err != nil {
				return cfg, fmt.Errorf("failed to decode config file: %w", err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Addr, "PORTAL_ADDR")
	setString(&cfg.Database.Driver, "PORTAL_DB_DRIVER")
	setString(&cfg.Database.Path, "PORTAL_DB_PATH")
	setString(&cfg.Database.Host, "PORTAL_DB_HOST")
	setString(&cfg.Database.User, "PORTAL_DB_USER")
	setString(&cfg.Database.Password, "PORTAL_DB_PASSWORD")
	setString(&cfg.Database.DBName, "PORTAL_DB_NAME")
	setString(&cfg.Database.SSLMode, "PORTAL_DB_SSLMODE")
	setString(&cfg.Logging.Level, "PORTAL_LOG_LEVEL")
	setString(&cfg.Logging.File, "PORTAL_LOG_FILE")
	setString(&cfg.Logging.GormLevel, "PORTAL_GORM_LOG_LEVEL")

	if v := os.Getenv("PORTAL_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
