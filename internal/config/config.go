package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings. Values come from the environment,
// optionally seeded from a .env file in the working directory.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required"`
	StoragePath  string `env:"STORAGE_PATH" envDefault:"datastore.json"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	// YTProxy routes YouTube traffic through an http, socks4 or socks5 proxy.
	YTProxy string `env:"YT_PROXY"`

	// QueueTimeout is how long a player may sit idle with an empty queue
	// before the bot leaves the voice channel.
	QueueTimeout time.Duration `env:"QUEUE_TIMEOUT" envDefault:"300s"`

	// IdleTimeout is how long the bot stays in a voice channel with no
	// human listeners before disconnecting.
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`

	// PlaylistMax caps how many tracks a single playlist URL may enqueue.
	PlaylistMax int `env:"PLAYLIST_MAX" envDefault:"25"`

	// DefaultVolume is the initial playback volume in percent (0-200).
	DefaultVolume int `env:"DEFAULT_VOLUME" envDefault:"100"`
}

// New loads configuration from .env (if present) and the environment.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.DefaultVolume < 0 || cfg.DefaultVolume > 200 {
		return nil, fmt.Errorf("DEFAULT_VOLUME must be between 0 and 200, got %d", cfg.DefaultVolume)
	}
	if cfg.PlaylistMax < 1 {
		return nil, fmt.Errorf("PLAYLIST_MAX must be at least 1, got %d", cfg.PlaylistMax)
	}

	return cfg, nil
}
