// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game   GameConfig   `toml:"game"`
	Speech SpeechConfig `toml:"speech"`
	Log    LogConfig    `toml:"log"`
}

// GameConfig maps exercise-related settings.
type GameConfig struct {
	Mode             *string `toml:"mode"`
	WarmUp           *bool   `toml:"warmup"`
	WarmUpRepeats    *int    `toml:"warmup-repeats"`
	PauseMs          *int    `toml:"pause-ms"`
	MistakeThreshold *int    `toml:"mistake-threshold"`
}

// SpeechConfig maps speech backend settings.
type SpeechConfig struct {
	Command *string `toml:"command"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
