package exercise

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/spellit/internal/model"
)

var errScriptDone = errors.New("key script exhausted")

// recorder captures renders, speech and key reads as one ordered event log.
type recorder struct {
	keys    []byte
	events  []string
	renders []string
	spoken  []string
	async   []string
}

func (r *recorder) ReadKey() (byte, error) {
	if len(r.keys) == 0 {
		return 0, errScriptDone
	}
	k := r.keys[0]
	r.keys = r.keys[1:]
	return k, nil
}

func (r *recorder) Render(target, progress string) error {
	r.renders = append(r.renders, progress)
	r.events = append(r.events, "render:"+progress)
	return nil
}

func (r *recorder) Speak(_ context.Context, text string) error {
	r.spoken = append(r.spoken, text)
	r.events = append(r.events, "say:"+text)
	return nil
}

// firstPicker always returns the first item.
type firstPicker struct{}

func (firstPicker) Pick(items []string) string { return items[0] }

func testConfig(mode model.Mode) model.Config {
	cfg := model.DefaultConfig()
	cfg.Mode = mode
	cfg.WarmUp = false
	cfg.Pause = 0
	return cfg
}

func newTestExercise(t *testing.T, target string, cfg model.Config, keys string) (*Exercise, *recorder) {
	t.Helper()
	rec := &recorder{keys: []byte(keys)}
	ex, err := New(target, Deps{
		Keys:    rec,
		Display: rec,
		Speaker: rec,
		Picker:  firstPicker{},
		Log:     zerolog.Nop(),
	}, cfg)
	if err != nil {
		t.Fatalf("new exercise: %v", err)
	}
	ex.async = func(text string) {
		rec.async = append(rec.async, text)
		rec.events = append(rec.events, "async:"+text)
	}
	return ex, rec
}

func runWithTimeout(t *testing.T, ex *Exercise) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return ex.Run(ctx)
}
