// Package session runs exercises back to back with randomly chosen words.
package session

import (
	"context"
	"fmt"

	"github.com/verte-zerg/spellit/internal/exercise"
	"github.com/verte-zerg/spellit/internal/model"
	"github.com/verte-zerg/spellit/internal/wordlist"
)

// Session owns the fixed word collection and the collaborators shared by every exercise.
type Session struct {
	words     []string
	deps      exercise.Deps
	cfg       model.Config
	completed int
}

// New validates words and returns a session ready to Run.
func New(words []string, deps exercise.Deps, cfg model.Config) (*Session, error) {
	if err := wordlist.Validate(words, wordlist.Typeable); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		words: append([]string(nil), words...),
		deps:  deps,
		cfg:   cfg,
	}, nil
}

// Completed returns how many words were finished so far.
func (s *Session) Completed() int {
	return s.completed
}

// Run plays words until an exercise fails, escape is pressed (exercise.ErrQuit)
// or ctx is cancelled. It never returns nil.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		word := s.deps.Picker.Pick(s.words)
		s.deps.Log.Debug().Str("word", word).Msg("starting exercise")
		ex, err := exercise.New(word, s.deps, s.cfg)
		if err != nil {
			return fmt.Errorf("failed to start exercise: %w", err)
		}
		if err := ex.Run(ctx); err != nil {
			s.deps.Log.Info().Int("completed", s.completed).Err(err).Msg("session ended")
			return err
		}
		s.completed++
	}
}
