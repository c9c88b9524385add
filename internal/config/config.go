package config

import (
	"os"
	"time"
	_ "time/tzdata"

	"depositrecon/pkg/utils"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the top-level depositrecon.yaml configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Server     ServerConfig     `yaml:"server"`
	Settlement SettlementConfig `yaml:"settlement"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
	Report     ReportConfig     `yaml:"report"`
}

// DatabaseConfig locates the SQLite file. MaxOpenConns above 1 is only
// honored for file databases; an in-memory database always uses one.
type DatabaseConfig struct {
	Path         string `yaml:"path"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// SettlementConfig holds the merchant credentials sent on every fetch.
type SettlementConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	Prefix   string        `yaml:"prefix"`
	Timeout  time.Duration `yaml:"timeout"`
}

// ScheduleConfig is the wall-clock time of the daily fetch. Timezone is an
// IANA name such as Asia/Bangkok; empty means the host's local zone.
type ScheduleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hour     int    `yaml:"hour"`
	Minute   int    `yaml:"minute"`
	Timezone string `yaml:"timezone"`
}

// Location resolves Timezone.
func (s ScheduleConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "unknown schedule timezone %q", s.Timezone)
	}
	return loc, nil
}

type ReportConfig struct {
	DeductionMarkers []string `yaml:"deduction_markers"`
}

func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:         "./data/depositrecon.db",
			MaxOpenConns: 1,
		},
		Server: ServerConfig{
			Port: "8080",
		},
		Settlement: SettlementConfig{
			Timeout: 120 * time.Second,
		},
		Schedule: ScheduleConfig{
			Enabled: true,
			Hour:    0,
			Minute:  5,
		},
		Report: ReportConfig{
			DeductionMarkers: []string{"ตัดเครดิต"},
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "reading config")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, "parsing config")
		}
	}

	cfg.applyEnv()

	if err := cfg.IsValid(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML. The file holds credentials and is created 0600.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(err, "writing config")
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Database.Path = utils.GetEnv("DB_PATH", c.Database.Path)
	c.Server.Port = utils.GetEnv("APP_PORT", c.Server.Port)
	c.Settlement.BaseURL = utils.GetEnv("SETTLEMENT_BASE_URL", c.Settlement.BaseURL)
	c.Settlement.Username = utils.GetEnv("SETTLEMENT_USERNAME", c.Settlement.Username)
	c.Settlement.Password = utils.GetEnv("SETTLEMENT_PASSWORD", c.Settlement.Password)
	c.Settlement.Prefix = utils.GetEnv("SETTLEMENT_PREFIX", c.Settlement.Prefix)
	c.Schedule.Hour = utils.GetEnvInt("FETCH_HOUR", c.Schedule.Hour)
	c.Schedule.Minute = utils.GetEnvInt("FETCH_MINUTE", c.Schedule.Minute)
	c.Schedule.Timezone = utils.GetEnv("FETCH_TIMEZONE", c.Schedule.Timezone)
}

func (c *Config) IsValid() error {
	switch {
	case c.Database.Path == "":
		return errors.Wrap(ErrInvalidConfig, "database path cannot be empty")
	case c.Database.MaxOpenConns < 1:
		return errors.Wrap(ErrInvalidConfig, "database max_open_conns must be at least 1")
	case c.Server.Port == "":
		return errors.Wrap(ErrInvalidConfig, "server port cannot be empty")
	case c.Settlement.Timeout <= 0:
		return errors.Wrap(ErrInvalidConfig, "settlement timeout must be positive")
	case c.Schedule.Hour < 0 || c.Schedule.Hour > 23:
		return errors.Wrap(ErrInvalidConfig, "schedule hour must be between 0 and 23")
	case c.Schedule.Minute < 0 || c.Schedule.Minute > 59:
		return errors.Wrap(ErrInvalidConfig, "schedule minute must be between 0 and 59")
	}
	if _, err := c.Schedule.Location(); err != nil {
		return err
	}
	return nil
}
