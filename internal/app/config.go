package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Engine kinds.
const (
	EngineRecorder = "recorder"
	EngineSocketIO = "socketio"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LogFormat string       `toml:"log_format"`
	LogLevel  string       `toml:"log_level"`
	Engine    EngineConfig `toml:"engine"`
	// TextureMaxSize bounds the width and height of image textures loaded
	// from disk. Zero keeps images at their original size.
	TextureMaxSize int `toml:"texture_max_size"`
}

// EngineConfig selects and addresses the engine shaders are committed to.
type EngineConfig struct {
	Kind               string        `toml:"kind"`
	URL                string        `toml:"url"`
	Namespace          string        `toml:"namespace"`
	Timeout            time.Duration `toml:"timeout"`
	ConnectTimeout     time.Duration `toml:"connect_timeout"`
	InsecureSkipVerify bool          `toml:"insecure_skip_verify"`
	Scene              uint32        `toml:"scene"`
	Shader             uint32        `toml:"shader"`
}

// DefaultConfig is the configuration used when no file or flag overrides it.
func DefaultConfig() Config {
	return Config{
		LogFormat: "text",
		LogLevel:  "info",
		Engine: EngineConfig{
			Kind:           EngineRecorder,
			Namespace:      "/",
			Timeout:        10 * time.Second,
			ConnectTimeout: 15 * time.Second,
		},
	}
}

// LoadConfig decodes the TOML file at path over DefaultConfig. Unknown keys
// are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// NewConfig validates cfg and returns a normalized copy.
func NewConfig(cfg Config) (*Config, error) {
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	cfg.Engine.Kind = strings.ToLower(cfg.Engine.Kind)
	switch cfg.Engine.Kind {
	case EngineRecorder:
	case EngineSocketIO:
		if cfg.Engine.URL == "" {
			return nil, errors.New("engine url is required for the socketio engine")
		}
	default:
		return nil, fmt.Errorf("invalid engine %q: must be '%s' or '%s'", cfg.Engine.Kind, EngineRecorder, EngineSocketIO)
	}
	if cfg.Engine.Timeout <= 0 {
		return nil, errors.New("engine timeout must be positive")
	}
	if cfg.TextureMaxSize < 0 {
		return nil, errors.New("texture max size must not be negative")
	}
	return &cfg, nil
}
