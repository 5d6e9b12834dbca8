// Package config loads the TOML file that tunes the proxy and the CLI.
// None of it can change which library a tether loads.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sliverarmory/tether/notify"
)

// EnvPath names the environment variable the proxy reads its config path
// from.
const EnvPath = "TETHER_CONFIG"

type Config struct {
	Notify   notify.Mode
	Cache    bool
	LogPath  string
	LogLevel zapcore.Level
}

type fileConfig struct {
	Notify struct {
		Mode string `toml:"mode"`
	} `toml:"notify"`
	Resolver struct {
		Cache bool `toml:"cache"`
	} `toml:"resolver"`
	Log struct {
		Path  string `toml:"path"`
		Level string `toml:"level"`
	} `toml:"log"`
}

func Default() Config {
	return Config{
		Notify:   notify.ModeModal,
		LogLevel: zapcore.InfoLevel,
	}
}

// Load overlays the keys defined in the file at path onto Default.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load tether config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load tether config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("notify", "mode") {
		mode, err := notify.ParseMode(raw.Notify.Mode)
		if err != nil {
			return Config{}, fmt.Errorf("parse notify.mode: %w", err)
		}
		cfg.Notify = mode
	}

	if meta.IsDefined("resolver", "cache") {
		cfg.Cache = raw.Resolver.Cache
	}

	if meta.IsDefined("log", "path") {
		cfg.LogPath = strings.TrimSpace(raw.Log.Path)
	}

	if meta.IsDefined("log", "level") {
		level, err := zapcore.ParseLevel(strings.TrimSpace(raw.Log.Level))
		if err != nil {
			return Config{}, fmt.Errorf("parse log.level: %w", err)
		}
		cfg.LogLevel = level
	}
	return cfg, nil
}

// FromEnv loads the file named by TETHER_CONFIG. An unset variable yields
// Default with a nil error.
func FromEnv() (Config, error) {
	path := strings.TrimSpace(os.Getenv(EnvPath))
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Logger builds a JSON logger appending to cfg.LogPath, or a no-op logger
// when no path is set.
func (cfg Config) Logger() (*zap.Logger, error) {
	if cfg.LogPath == "" {
		return zap.NewNop(), nil
	}
	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", cfg.LogPath, err)
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.Lock(f),
		cfg.LogLevel,
	)
	return zap.New(core), nil
}
