// Package exercise runs the per-word typing state machine.
package exercise

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/spellit/internal/keyboard"
	"github.com/verte-zerg/spellit/internal/model"
	"github.com/verte-zerg/spellit/internal/speech"
	"github.com/verte-zerg/spellit/internal/wordlist"
)

// ErrQuit is returned when the player presses escape. The caller is expected to
// exit the process rather than start another word.
var ErrQuit = errors.New("quit requested")

// State is the exercise lifecycle position.
type State int

const (
	StateWarmUp State = iota
	StateAwaitingKey
	StateEvaluating
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateWarmUp:
		return "warm-up"
	case StateAwaitingKey:
		return "awaiting-key"
	case StateEvaluating:
		return "evaluating"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// KeySource delivers one keystroke per call.
type KeySource interface {
	ReadKey() (byte, error)
}

// Renderer draws the target word and the typed prefix.
type Renderer interface {
	Render(target, progress string) error
}

// Picker chooses one of items.
type Picker interface {
	Pick(items []string) string
}

// Deps are the collaborators shared by every exercise of a session.
type Deps struct {
	Keys    KeySource
	Display Renderer
	Speaker speech.Speaker
	Picker  Picker
	Log     zerolog.Logger
}

// Exercise is one attempt at typing a single word from empty progress to a full match.
type Exercise struct {
	target   string
	progress []byte
	mistakes int
	state    State

	keystrokes int
	misses     int

	cfg  model.Config
	deps Deps

	// async dispatches fire-and-forget speech.
	async func(text string)
}

// New builds an exercise for target, which must be a non-empty a..z word.
func New(target string, deps Deps, cfg model.Config) (*Exercise, error) {
	if !wordlist.Typeable(target) {
		return nil, fmt.Errorf("word %q is not typeable", target)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Exercise{
		target:   target,
		progress: make([]byte, 0, len(target)),
		state:    StateAwaitingKey,
		cfg:      cfg,
		deps:     deps,
	}
	e.async = func(text string) {
		speech.Async(deps.Speaker, text, deps.Log)
	}
	return e, nil
}

// Target returns the word being practiced.
func (e *Exercise) Target() string { return e.target }

// Progress returns the correctly typed prefix.
func (e *Exercise) Progress() string { return string(e.progress) }

// Mistakes returns the consecutive miss count since the last reset.
func (e *Exercise) Mistakes() int { return e.mistakes }

// State returns the current lifecycle state.
func (e *Exercise) State() State { return e.state }

// Run drives the exercise until the word is typed, escape is pressed, or an error occurs.
func (e *Exercise) Run(ctx context.Context) error {
	if e.feedback() && e.cfg.WarmUp {
		e.state = StateWarmUp
		for i := 0; i < e.cfg.WarmUpRepeats; i++ {
			e.say(ctx, e.target)
		}
	}

	for {
		e.state = StateAwaitingKey
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.deps.Display.Render(e.target, e.Progress()); err != nil {
			return err
		}
		key, err := e.deps.Keys.ReadKey()
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		done, err := e.handleKey(ctx, key)
		if err != nil {
			return err
		}
		if done {
			return e.finish(ctx)
		}
	}
}

// handleKey applies one keystroke and reports whether the word is now complete.
func (e *Exercise) handleKey(ctx context.Context, key byte) (bool, error) {
	if key == keyboard.KeyEscape {
		return false, ErrQuit
	}
	if !keyboard.IsLetter(key) {
		return false, nil
	}

	e.state = StateEvaluating
	e.keystrokes++
	if e.feedback() {
		e.async(string(key))
	}

	switch {
	case key == e.target[len(e.progress)]:
		e.progress = append(e.progress, key)
		e.mistakes = 0
	case e.feedback():
		e.misses++
		e.mistakes++
	default:
		e.misses++
		e.say(ctx, string(key))
	}
	e.deps.Log.Debug().
		Str("word", e.target).
		Str("key", string(key)).
		Str("progress", e.Progress()).
		Int("mistakes", e.mistakes).
		Msg("key evaluated")

	if e.feedback() && e.mistakes >= e.cfg.MistakeThreshold {
		e.mistakes = 0
		if err := e.pause(ctx); err != nil {
			return false, err
		}
		e.say(ctx, e.deps.Picker.Pick(consolationPhrases))
	}
	return len(e.progress) == len(e.target), nil
}

func (e *Exercise) finish(ctx context.Context) error {
	if err := e.deps.Display.Render(e.target, e.Progress()); err != nil {
		return err
	}
	if err := e.pause(ctx); err != nil {
		return err
	}
	e.say(ctx, e.deps.Picker.Pick(completionPhrases))
	e.state = StateCompleted
	e.deps.Log.Info().
		Str("word", e.target).
		Int("keystrokes", e.keystrokes).
		Int("misses", e.misses).
		Msg("word completed")
	return nil
}

func (e *Exercise) feedback() bool {
	return e.cfg.Mode == model.ModeFeedback
}

// say speaks synchronously. Speech is best-effort, failures are only logged.
func (e *Exercise) say(ctx context.Context, text string) {
	if err := e.deps.Speaker.Speak(ctx, text); err != nil {
		e.deps.Log.Debug().Err(err).Str("text", text).Msg("speech failed")
	}
}

func (e *Exercise) pause(ctx context.Context) error {
	if e.cfg.Pause <= 0 {
		return nil
	}
	timer := time.NewTimer(e.cfg.Pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
