package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the runtime settings shared by the server, the CLI and dbtool.
type Config struct {
	Port        string `mapstructure:"port"`
	CostFile    string `mapstructure:"cost_file"`
	CostSource  string `mapstructure:"cost_source"`
	DBPath      string `mapstructure:"db_path"`
	DatabaseURL string `mapstructure:"database_url"`
	StrictLanes bool   `mapstructure:"strict_lanes"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb"`
	LogLevel    string `mapstructure:"log_level"`
}

const (
	CostSourceCSV      = "csv"
	CostSourceSQLite   = "sqlite"
	CostSourcePostgres = "postgres"
)

var defaults = map[string]any{
	"port":          "8080",
	"cost_file":     "custos_consolidados.csv",
	"cost_source":   CostSourceCSV,
	"db_path":       "data/app.db",
	"database_url":  "",
	"strict_lanes":  false,
	"max_upload_mb": 32,
	"log_level":     "info",
}

// Load reads settings from a .env file (if present), the process environment
// and, when CONFIG_FILE is set, a YAML file. Environment variables win.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
		if err := v.BindEnv(k, strings.ToUpper(k)); err != nil {
			return nil, fmt.Errorf("load config: bind %s: %w", k, err)
		}
	}

	if path := Get("CONFIG_FILE", ""); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load config: read %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.CostSource {
	case CostSourceCSV:
		if strings.TrimSpace(c.CostFile) == "" {
			return errors.New("COST_FILE is required when COST_SOURCE=csv")
		}
	case CostSourceSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return errors.New("DB_PATH is required when COST_SOURCE=sqlite")
		}
	case CostSourcePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("DATABASE_URL is required when COST_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("unknown COST_SOURCE %q (want csv, sqlite or postgres)", c.CostSource)
	}

	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}

	return nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	v := viper.New()
	_ = v.BindEnv(key)
	if s := strings.TrimSpace(v.GetString(key)); s != "" {
		return s
	}
	return fallback
}
