package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all configuration for the wsbridge tools.
type Config struct {
	Tap  TapConfig  `toml:"tap"`
	Echo EchoConfig `toml:"echo"`
}

type TapConfig struct {
	URL          string `toml:"url"`
	Mode         string `toml:"mode"`
	PingInterval int    `toml:"ping_interval"`
}

type EchoConfig struct {
	Addr     string `toml:"addr"`
	MaxConns int    `toml:"max_conns"`
}

func defaults() Config {
	return Config{
		Tap: TapConfig{
			URL:          "ws://127.0.0.1:18900/ws",
			Mode:         "buffered",
			PingInterval: 15,
		},
		Echo: EchoConfig{
			Addr:     ":18900",
			MaxConns: 32,
		},
	}
}

// Load reads configuration from the TOML config file (if it exists) and
// applies environment variable overrides. Env vars always win.
//
// Config file resolution: WSBRIDGE_CONFIG env var → ~/.config/wsbridge/config.toml → skip.
func Load() (*Config, error) {
	cfg := defaults()

	path := configPath()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return nil, err
			}
		}
	}

	applyEnv(&cfg)
	return &cfg, nil
}

func configPath() string {
	if p := os.Getenv("WSBRIDGE_CONFIG"); p != "" {
		return expandHome(p)
	}
	home := os.Getenv("HOME")
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "wsbridge", "config.toml")
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WSBRIDGE_URL"); v != "" {
		cfg.Tap.URL = v
	}
	if v := os.Getenv("WSBRIDGE_MODE"); v != "" {
		cfg.Tap.Mode = v
	}
	if v := os.Getenv("WSBRIDGE_PING_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Tap.PingInterval = n
		}
	}

	if v := os.Getenv("WSBRIDGE_ECHO_ADDR"); v != "" {
		cfg.Echo.Addr = v
	}
	if v := os.Getenv("WSBRIDGE_ECHO_MAX_CONNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Echo.MaxConns = n
		}
	}
}

// Validate normalises the tap mode and clamps numeric fields to sane values.
func (c *Config) Validate() error {
	mode := strings.ToLower(c.Tap.Mode)
	switch mode {
	case "buffered", "streamed":
		c.Tap.Mode = mode
	default:
		c.Tap.Mode = "buffered"
	}

	if c.Tap.PingInterval < 1 {
		c.Tap.PingInterval = 15
	}
	if c.Echo.MaxConns < 1 {
		c.Echo.MaxConns = 32
	}

	return nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
