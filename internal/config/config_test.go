package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.ServerAddress == "" || cfg.DevAPIAddress == "" {
		t.Fatal("listen addresses should have defaults")
	}
	if cfg.EmailHeader != "X-User-Email" && os.Getenv("IDENTITY_EMAIL_HEADER") == "" {
		t.Fatalf("unexpected default email header %q", cfg.EmailHeader)
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.local:5000")
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:9999")
	t.Setenv("AUTO_MIGRATE_UP", "false")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BaseURL != "http://api.local:5000" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.ServerAddress != "127.0.0.1:9999" {
		t.Errorf("ServerAddress = %q", cfg.ServerAddress)
	}
	if cfg.AutoMigrateUp != "false" {
		t.Errorf("AutoMigrateUp = %q", cfg.AutoMigrateUp)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	if err := os.WriteFile(file, []byte("BIDBOARD_TEST_FLASH=from_file\nFLASH_COOKIE=dotenv_flash\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FLASH_COOKIE", "already_set")
	t.Cleanup(func() { os.Unsetenv("BIDBOARD_TEST_FLASH") })

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), file); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("BIDBOARD_TEST_FLASH"); got != "from_file" {
		t.Errorf("variable from file = %q", got)
	}
	if got := os.Getenv("FLASH_COOKIE"); got != "already_set" {
		t.Errorf("set variable was overridden: %q", got)
	}
}
