package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("missing env file should be ignored: %v", err)
	}
	if cfg.MaxPlayers != 3 || cfg.TickRate != 20 || cfg.Rules.WaveInterval != 20*time.Second {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.TickInterval() != 50*time.Millisecond {
		t.Fatalf("tick interval = %v", cfg.TickInterval())
	}
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	keys := []string{"TD_MAX_PLAYERS", "TD_WAVE_INTERVAL", "TD_LOG_LEVEL"}
	for _, k := range keys {
		_ = os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for _, k := range keys {
			_ = os.Unsetenv(k)
		}
	})

	path := filepath.Join(t.TempDir(), ".env")
	body := "TD_MAX_PLAYERS=4\nTD_WAVE_INTERVAL=5s\nTD_LOG_LEVEL=debug\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxPlayers != 4 || cfg.Rules.WaveInterval != 5*time.Second || cfg.LogLevel != "debug" {
		t.Fatalf("env file not applied: %+v", cfg)
	}
}

func TestLoadConfigPortAndErrors(t *testing.T) {
	t.Setenv("PORT", "8081")
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" {
		t.Fatalf("addr = %q, want :8081", cfg.Addr)
	}

	t.Setenv("TD_BASE_HP", "lots")
	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error for non-numeric TD_BASE_HP")
	}
	t.Setenv("TD_BASE_HP", "100")
	t.Setenv("TD_WAVE_INTERVAL", "-1s")
	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error for negative TD_WAVE_INTERVAL")
	}
}
