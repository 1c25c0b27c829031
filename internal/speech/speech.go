// Package speech renders text to audio through the host's speech command.
package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// ErrUnsupportedPlatform is returned by Detect when no speech backend matches the host.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Speaker renders text to audio and blocks until playback finishes.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Backend identifies how a speech command receives its text.
type Backend int

const (
	// BackendSay passes the text as a single argument (macOS say).
	BackendSay Backend = iota + 1
	// BackendFestival writes the text to the synthesizer's stdin (festival --tts).
	BackendFestival
)

func (b Backend) String() string {
	switch b {
	case BackendSay:
		return "say"
	case BackendFestival:
		return "festival"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// Command is a Speaker backed by an external process, one per call.
// Text is never interpolated into a shell command line.
type Command struct {
	backend Backend
	bin     string
}

// NewCommand returns a Command for backend. An empty bin selects the backend's default binary.
func NewCommand(backend Backend, bin string) *Command {
	bin = strings.TrimSpace(bin)
	if bin == "" {
		bin = backend.String()
	}
	return &Command{backend: backend, bin: bin}
}

// Backend reports the selected backend.
func (c *Command) Backend() Backend {
	return c.backend
}

// Bin reports the binary invoked per call.
func (c *Command) Bin() string {
	return c.bin
}

// Speak implements Speaker.
func (c *Command) Speak(ctx context.Context, text string) error {
	var cmd *exec.Cmd
	switch c.backend {
	case BackendSay:
		cmd = exec.CommandContext(ctx, c.bin, text)
	case BackendFestival:
		cmd = exec.CommandContext(ctx, c.bin, "--tts")
		cmd.Stdin = strings.NewReader(text)
	default:
		return fmt.Errorf("unknown speech backend %s", c.backend)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", c.bin, err)
	}
	return nil
}

// Detect selects the speech backend for goos (normally runtime.GOOS).
// bin overrides the backend's default binary when non-empty.
func Detect(goos, bin string) (*Command, error) {
	switch goos {
	case "darwin":
		return NewCommand(BackendSay, bin), nil
	case "linux":
		return NewCommand(BackendFestival, bin), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// Silent discards all speech.
type Silent struct{}

// Speak implements Speaker.
func (Silent) Speak(context.Context, string) error {
	return nil
}

// Async speaks text on a detached goroutine. The caller never waits for it and
// failures are only logged.
func Async(s Speaker, text string, log zerolog.Logger) {
	go func() {
		if err := s.Speak(context.Background(), text); err != nil {
			log.Debug().Err(err).Str("text", text).Msg("background speech failed")
		}
	}()
}
