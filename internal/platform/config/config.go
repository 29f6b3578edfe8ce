package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	EnvDataDir = "STUDYTIME_DATA_DIR"

	ThemeDark  = "unipd-dark"
	ThemeLight = "unipd-light"

	DefaultChartDays = 7
)

type Config struct {
	DataDir      string
	SessionsPath string
	SubjectsPath string
	ActivePath   string
	DBPath       string
	LogPath      string
	SettingsPath string

	Theme     string
	LogLevel  string
	Location  *time.Location
	ChartDays int
}

// settings mirrors config.yaml. Every key is optional.
type settings struct {
	Theme     string `yaml:"theme"`
	Timezone  string `yaml:"timezone"`
	LogLevel  string `yaml:"log_level"`
	ChartDays int    `yaml:"chart_days"`
}

// ResolveDataDir picks the data directory: the flag value, then
// $STUDYTIME_DATA_DIR, then $XDG_DATA_HOME/studytime.
func ResolveDataDir(flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		return v
	}
	return filepath.Join(xdg.DataHome, "studytime")
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:      dataDir,
		SessionsPath: filepath.Join(dataDir, "sessions.csv"),
		SubjectsPath: filepath.Join(dataDir, "subjects.csv"),
		ActivePath:   filepath.Join(dataDir, "active.json"),
		DBPath:       filepath.Join(dataDir, "studytime.db"),
		LogPath:      filepath.Join(dataDir, "studytime.log"),
		SettingsPath: filepath.Join(dataDir, "config.yaml"),
		Theme:        ThemeDark,
		LogLevel:     "info",
		Location:     time.Local,
		ChartDays:    DefaultChartDays,
	}

	payload, err := os.ReadFile(cfg.SettingsPath)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var s settings
	if err := yaml.Unmarshal(payload, &s); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.apply(s); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", cfg.SettingsPath, err)
	}
	return cfg, nil
}

func (c *Config) apply(s settings) error {
	switch s.Theme {
	case "":
	case ThemeDark, ThemeLight:
		c.Theme = s.Theme
	default:
		return fmt.Errorf("unknown theme %q", s.Theme)
	}
	if s.Timezone != "" {
		loc, err := time.LoadLocation(s.Timezone)
		if err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
		c.Location = loc
	}
	if s.LogLevel != "" {
		c.LogLevel = s.LogLevel
	}
	if s.ChartDays < 0 {
		return fmt.Errorf("chart_days must be non-negative")
	}
	if s.ChartDays > 0 {
		c.ChartDays = s.ChartDays
	}
	return nil
}
