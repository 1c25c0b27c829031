// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects which exercise behavior is used.
type Mode string

const (
	// ModeFeedback speaks every keystroke, warms up, and consoles after repeated mistakes.
	ModeFeedback Mode = "feedback"
	// ModeMinimal only speaks mistyped keys back.
	ModeMinimal Mode = "minimal"
)

// ParseMode validates a mode name.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeFeedback:
		return ModeFeedback, nil
	case ModeMinimal:
		return ModeMinimal, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want %q or %q)", raw, ModeFeedback, ModeMinimal)
	}
}

// Config defines game settings.
type Config struct {
	Mode             Mode
	WarmUp           bool
	WarmUpRepeats    int
	Pause            time.Duration
	MistakeThreshold int
	SpeechCommand    string
	Mute             bool
}

// DefaultConfig returns the canonical feedback-mode settings.
func DefaultConfig() Config {
	return Config{
		Mode:             ModeFeedback,
		WarmUp:           true,
		WarmUpRepeats:    2,
		Pause:            time.Second,
		MistakeThreshold: 4,
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if c.Pause < 0 {
		return fmt.Errorf("--pause must be >= 0")
	}
	if c.MistakeThreshold <= 0 {
		return fmt.Errorf("mistake-threshold must be > 0")
	}
	if c.WarmUpRepeats < 0 {
		return fmt.Errorf("warmup-repeats must be >= 0")
	}
	return nil
}
