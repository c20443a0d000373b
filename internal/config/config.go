// Package config loads tally's settings from a YAML file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/utils"
)

type Config struct {
	Storage       string  `yaml:"storage"`
	Timezone      string  `yaml:"timezone"`
	WeekStart     string  `yaml:"week_start"`
	WaterTargetOz float64 `yaml:"water_target_oz"`
	WidgetPath    string  `yaml:"widget_path,omitempty"`
	Notifications bool    `yaml:"notifications"`
	Debug         bool    `yaml:"debug"`
}

// Default returns the settings used when no file or override is present.
func Default() Config {
	return Config{
		Storage:       constants.DefaultStorePath,
		Timezone:      constants.DefaultTimezone,
		WeekStart:     constants.DefaultWeekStart,
		WaterTargetOz: constants.DefaultWaterTargetOz,
		Notifications: constants.DefaultNotifications,
	}
}

// Load reads path (a missing file is fine), applies TALLY_* environment
// overrides, fills blanks and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ExpandPath(path))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(constants.EnvStorage); v != "" {
		c.Storage = v
	}
	if v := os.Getenv(constants.EnvTimezone); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv(constants.EnvWeekStart); v != "" {
		c.WeekStart = v
	}
	if v := os.Getenv(constants.EnvWidgetPath); v != "" {
		c.WidgetPath = v
	}
	if v := os.Getenv(constants.EnvWaterTarget); v != "" {
		oz, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", constants.EnvWaterTarget, err)
		}
		c.WaterTargetOz = oz
	}
	if v := os.Getenv(constants.EnvDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", constants.EnvDebug, err)
		}
		c.Debug = b
	}
	if v := os.Getenv(constants.EnvNotifications); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", constants.EnvNotifications, err)
		}
		c.Notifications = b
	}
	return nil
}

// ApplyDefaults fills empty fields.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.Storage) == "" {
		c.Storage = constants.DefaultStorePath
	}
	if strings.TrimSpace(c.Timezone) == "" {
		c.Timezone = constants.DefaultTimezone
	}
	if strings.TrimSpace(c.WeekStart) == "" {
		c.WeekStart = constants.DefaultWeekStart
	}
	if c.WaterTargetOz == 0 {
		c.WaterTargetOz = constants.DefaultWaterTargetOz
	}
}

func (c Config) Validate() error {
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("%w: unknown timezone %q", models.ErrInvalid, c.Timezone)
	}
	if _, err := c.FirstWeekday(); err != nil {
		return err
	}
	if c.WaterTargetOz < 0 {
		return fmt.Errorf("%w: water target cannot be negative", models.ErrInvalid)
	}
	return nil
}

// FirstWeekday parses week_start. Only sunday and monday are accepted.
func (c Config) FirstWeekday() (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(c.WeekStart)) {
	case "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	default:
		return time.Sunday, fmt.Errorf("%w: week_start must be sunday or monday, got %q", models.ErrInvalid, c.WeekStart)
	}
}

// Location resolves the configured timezone.
func (c Config) Location() *time.Location {
	loc, err := utils.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
