package config

import (
	"os"
	"path/filepath"
	"testing"
)

var allKeys = []string{
	"VIEWER_PORT", "LOG_LEVEL", "VIEWER_ATTACHMENTS_DIR", "VIEWER_ATTACHMENTS_MOUNT",
	"VIEWER_WEB_ROOT", "VIEWER_TIMEZONE", "VIEWER_MAX_UPLOAD_MB", "VIEWER_EXPORT_FILE",
	"VIEWER_WATCH", "NATS_URL", "NATS_TOKEN",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
	}
	t.Setenv("VIEWER_ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.Port != 8760 {
		t.Errorf("expected default port 8760, got %d", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.AttachmentsDir != "./slack_files" {
		t.Errorf("expected default attachments dir, got %s", cfg.AttachmentsDir)
	}
	if cfg.AttachmentsMount != "/slack_files" {
		t.Errorf("expected default mount, got %s", cfg.AttachmentsMount)
	}
	if cfg.WebRoot != "/" {
		t.Errorf("expected default web root /, got %s", cfg.WebRoot)
	}
	if cfg.Timezone != "Local" {
		t.Errorf("expected default timezone Local, got %s", cfg.Timezone)
	}
	if cfg.MaxUploadBytes() != 32<<20 {
		t.Errorf("expected 32MB upload limit, got %d", cfg.MaxUploadBytes())
	}
	if cfg.Watch {
		t.Error("expected watch disabled by default")
	}
	if cfg.NatsURL != "" {
		t.Errorf("expected empty default nats url, got %s", cfg.NatsURL)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("VIEWER_PORT", "9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("VIEWER_ATTACHMENTS_DIR", "/data/slack_files_202505200014")
	t.Setenv("VIEWER_ATTACHMENTS_MOUNT", "slack_files_202505200014/")
	t.Setenv("VIEWER_WEB_ROOT", "/static")
	t.Setenv("VIEWER_TIMEZONE", "Europe/Paris")
	t.Setenv("VIEWER_MAX_UPLOAD_MB", "8")
	t.Setenv("VIEWER_EXPORT_FILE", "/data/export.json")
	t.Setenv("VIEWER_WATCH", "true")
	t.Setenv("NATS_URL", "nats://localhost:4222")
	t.Setenv("NATS_TOKEN", "s3cr3t-token")

	cfg := Load()

	if cfg.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug, got %s", cfg.LogLevel)
	}
	if cfg.AttachmentsDir != "/data/slack_files_202505200014" {
		t.Errorf("unexpected attachments dir %s", cfg.AttachmentsDir)
	}
	if cfg.AttachmentsMount != "/slack_files_202505200014" {
		t.Errorf("expected normalized mount, got %s", cfg.AttachmentsMount)
	}
	if cfg.WebRoot != "/static" {
		t.Errorf("unexpected web root %s", cfg.WebRoot)
	}
	if cfg.MaxUploadBytes() != 8<<20 {
		t.Errorf("expected 8MB, got %d", cfg.MaxUploadBytes())
	}
	if cfg.ExportFile != "/data/export.json" || !cfg.Watch {
		t.Errorf("unexpected export settings %s %v", cfg.ExportFile, cfg.Watch)
	}
	if cfg.NatsURL != "nats://localhost:4222" || cfg.NatsToken != "s3cr3t-token" {
		t.Errorf("unexpected nats settings %s %s", cfg.NatsURL, cfg.NatsToken)
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("VIEWER_PORT", "notanumber")
	t.Setenv("VIEWER_MAX_UPLOAD_MB", "-4")
	t.Setenv("VIEWER_WATCH", "maybe")

	cfg := Load()

	if cfg.Port != 8760 {
		t.Errorf("expected default port on invalid value, got %d", cfg.Port)
	}
	if cfg.MaxUploadMB != 32 {
		t.Errorf("expected default upload limit on negative value, got %d", cfg.MaxUploadMB)
	}
	if cfg.Watch {
		t.Error("expected watch default on invalid bool")
	}
}

func TestLoad_DotenvFile(t *testing.T) {
	clearEnv(t)
	// Unset so the dotenv value can apply; t.Setenv restores it afterwards.
	os.Unsetenv("VIEWER_WEB_ROOT")

	envFile := filepath.Join(t.TempDir(), "viewer.env")
	if err := os.WriteFile(envFile, []byte("VIEWER_WEB_ROOT=/from-dotenv\nVIEWER_PORT=1234\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VIEWER_ENV_FILE", envFile)
	t.Setenv("VIEWER_PORT", "9001")

	cfg := Load()

	if cfg.WebRoot != "/from-dotenv" {
		t.Errorf("expected web root from dotenv, got %s", cfg.WebRoot)
	}
	if cfg.Port != 9001 {
		t.Errorf("expected environment to win over dotenv, got %d", cfg.Port)
	}
}

func TestLocation(t *testing.T) {
	cfg := Config{Timezone: "UTC"}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Fatalf("expected UTC, got %v %v", loc, err)
	}

	cfg.Timezone = "Mars/Olympus_Mons"
	if _, err := cfg.Location(); err == nil {
		t.Error("expected error for unknown timezone")
	}
}
