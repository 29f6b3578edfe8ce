package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"studytime/internal/platform/config"
)

func TestNewUsesDefaultsWithoutSettingsFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.SessionsPath != filepath.Join(dir, "sessions.csv") || cfg.SubjectsPath != filepath.Join(dir, "subjects.csv") {
		t.Fatalf("unexpected paths: %+v", cfg)
	}
	if cfg.Theme != config.ThemeDark || cfg.ChartDays != config.DefaultChartDays || cfg.Location != time.Local {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestNewReadsSettingsFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	yml := "theme: unipd-light\ntimezone: Europe/Rome\nlog_level: debug\nchart_days: 14\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yml), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Theme != config.ThemeLight || cfg.LogLevel != "debug" || cfg.ChartDays != 14 {
		t.Fatalf("settings not applied: %+v", cfg)
	}
	if cfg.Location.String() != "Europe/Rome" {
		t.Fatalf("expected Europe/Rome, got %s", cfg.Location)
	}
}

func TestNewRejectsBadSettings(t *testing.T) {
	t.Parallel()
	for _, yml := range []string{"theme: neon\n", "timezone: Mars/Base\n", "chart_days: -1\n", "theme: [\n"} {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yml), 0o644); err != nil {
			t.Fatalf("write settings: %v", err)
		}
		if _, err := config.New(dir); err == nil {
			t.Fatalf("expected error for %q", yml)
		}
	}
	if _, err := config.New(""); err == nil {
		t.Fatalf("expected error for empty data dir")
	}
}

func TestResolveDataDirPrecedence(t *testing.T) {
	t.Setenv(config.EnvDataDir, "/from/env")
	if got := config.ResolveDataDir("/from/flag"); got != "/from/flag" {
		t.Fatalf("flag must win, got %s", got)
	}
	if got := config.ResolveDataDir(""); got != "/from/env" {
		t.Fatalf("env must be used without flag, got %s", got)
	}
	t.Setenv(config.EnvDataDir, "")
	if got := config.ResolveDataDir(""); filepath.Base(got) != "studytime" {
		t.Fatalf("expected xdg fallback ending in studytime, got %s", got)
	}
}
