package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const DEFAULT_ENV_FILE = ".env"

// Everything is read from environment variables. A .env file, if present, is loaded first
// but never overrides variables that are already set.
type Config struct {
	ListenAddr     string        `env:"LISTEN_ADDR" env-default:":7777" env-description:"Address the rankings server listens on"`
	DatasetSource  string        `env:"DATASET_SOURCE" env-default:"nations_comprehensive.json" env-description:"Path or http(s) URL of the nations dataset"`
	LoadTimeout    time.Duration `env:"LOAD_TIMEOUT" env-default:"10s" env-description:"Upper bound for a single dataset load"`
	ReloadInterval time.Duration `env:"RELOAD_INTERVAL" env-default:"0s" env-description:"Reload the dataset this often while serving, 0 disables"`
	MarkersURL     string        `env:"MARKERS_URL" env-default:"https://map.stoneworks.gg/abex1/maps/abexilas/live/markers.json" env-description:"BlueMap markers.json to scrape"`
	ExportDir      string        `env:"EXPORT_DIR" env-default:"." env-description:"Directory scrape results are written to"`
	LogLevel       string        `env:"LOG_LEVEL" env-default:"info" env-description:"logrus level (trace, debug, info, warn, error)"`
	RankingsRPM    int           `env:"RANKINGS_RPM" env-default:"30" env-description:"Req/m per client for /api/rankings, 0 disables"`
	ReloadRPM      int           `env:"RELOAD_RPM" env-default:"2" env-description:"Req/m per client for /api/reload, 0 disables"`
}

// Loads envFile (missing is fine) and reads the config from the environment.
func Load(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", envFile, err)
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("error reading config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.ListenAddr == "" {
		errs = append(errs, errors.New("LISTEN_ADDR must not be empty"))
	}
	if c.DatasetSource == "" {
		errs = append(errs, errors.New("DATASET_SOURCE must not be empty"))
	}
	if c.LoadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("LOAD_TIMEOUT must be positive, got %s", c.LoadTimeout))
	}
	if c.ReloadInterval < 0 {
		errs = append(errs, fmt.Errorf("RELOAD_INTERVAL must not be negative, got %s", c.ReloadInterval))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	return errors.Join(errs...)
}

func (c *Config) Level() (log.Level, error) {
	return log.ParseLevel(c.LogLevel)
}

// Human readable list of every variable the config reads, with defaults.
func Usage() string {
	desc, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}

	return desc
}
