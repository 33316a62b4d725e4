package config

import (
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token-123")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if cfg.DiscordToken != "token-123" {
		t.Errorf("DiscordToken = %q, expected %q", cfg.DiscordToken, "token-123")
	}
	if cfg.StoragePath != "datastore.json" {
		t.Errorf("StoragePath = %q, expected datastore.json", cfg.StoragePath)
	}
	if cfg.QueueTimeout != 300*time.Second {
		t.Errorf("QueueTimeout = %v, expected 300s", cfg.QueueTimeout)
	}
	if cfg.IdleTimeout != 60*time.Second {
		t.Errorf("IdleTimeout = %v, expected 60s", cfg.IdleTimeout)
	}
	if cfg.PlaylistMax != 25 {
		t.Errorf("PlaylistMax = %d, expected 25", cfg.PlaylistMax)
	}
	if cfg.DefaultVolume != 100 {
		t.Errorf("DefaultVolume = %d, expected 100", cfg.DefaultVolume)
	}
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token-123")
	t.Setenv("STORAGE_PATH", "/tmp/store.json")
	t.Setenv("QUEUE_TIMEOUT", "2m")
	t.Setenv("PLAYLIST_MAX", "5")
	t.Setenv("DEFAULT_VOLUME", "80")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if cfg.StoragePath != "/tmp/store.json" {
		t.Errorf("StoragePath = %q", cfg.StoragePath)
	}
	if cfg.QueueTimeout != 2*time.Minute {
		t.Errorf("QueueTimeout = %v, expected 2m", cfg.QueueTimeout)
	}
	if cfg.PlaylistMax != 5 {
		t.Errorf("PlaylistMax = %d, expected 5", cfg.PlaylistMax)
	}
	if cfg.DefaultVolume != 80 {
		t.Errorf("DefaultVolume = %d, expected 80", cfg.DefaultVolume)
	}
}

func TestNew_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"volume too high", "DEFAULT_VOLUME", "250"},
		{"volume negative", "DEFAULT_VOLUME", "-1"},
		{"playlist max zero", "PLAYLIST_MAX", "0"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv("DISCORD_TOKEN", "token-123")
			t.Setenv(test.key, test.value)

			if _, err := New(); err == nil {
				t.Errorf("New() with %s=%s succeeded, expected error", test.key, test.value)
			}
		})
	}
}
