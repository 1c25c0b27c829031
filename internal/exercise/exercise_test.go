package exercise

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/spellit/internal/keyboard"
	"github.com/verte-zerg/spellit/internal/model"
)

func TestTypingWordInOrderCompletes(t *testing.T) {
	ex, rec := newTestExercise(t, "cat", testConfig(model.ModeFeedback), "cat")

	require.NoError(t, runWithTimeout(t, ex))
	require.Equal(t, StateCompleted, ex.State())
	require.Equal(t, "cat", ex.Progress())
	require.Equal(t, []string{"", "c", "ca", "cat"}, rec.renders)
	require.Equal(t, []string{"c", "a", "t"}, rec.async)
	require.Equal(t, []string{completionPhrases[0]}, rec.spoken)
	require.Empty(t, rec.keys, "exercise should stop reading once complete")
}

func TestFourMistakesTriggerConsolation(t *testing.T) {
	ex, rec := newTestExercise(t, "cat", testConfig(model.ModeFeedback), "")
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		done, err := ex.handleKey(ctx, 'x')
		require.NoError(t, err)
		require.False(t, done)
		require.Equal(t, i, ex.Mistakes())
		require.Empty(t, rec.spoken)
	}

	done, err := ex.handleKey(ctx, 'x')
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, 0, ex.Mistakes())
	require.Equal(t, "", ex.Progress())
	require.Equal(t, []string{consolationPhrases[0]}, rec.spoken)
	require.Equal(t, []string{"x", "x", "x", "x"}, rec.async)
}

func TestCorrectKeyResetsMistakes(t *testing.T) {
	ex, _ := newTestExercise(t, "cat", testConfig(model.ModeFeedback), "")
	ctx := context.Background()

	for _, k := range []byte("zzc") {
		_, err := ex.handleKey(ctx, k)
		require.NoError(t, err)
	}
	require.Equal(t, 0, ex.Mistakes())
	require.Equal(t, "c", ex.Progress())

	_, err := ex.handleKey(ctx, 'q')
	require.NoError(t, err)
	require.Equal(t, 1, ex.Mistakes())
	require.Equal(t, "c", ex.Progress())
}

func TestNonLetterKeysAreIgnored(t *testing.T) {
	ex, rec := newTestExercise(t, "dog", testConfig(model.ModeFeedback), "1")

	err := runWithTimeout(t, ex)
	require.ErrorIs(t, err, errScriptDone)
	require.Equal(t, []string{"", ""}, rec.renders)
	require.Equal(t, "", ex.Progress())
	require.Equal(t, 0, ex.Mistakes())
	require.Empty(t, rec.spoken)
	require.Empty(t, rec.async)
}

func TestNonLetterKeysNeverMutateState(t *testing.T) {
	ex, rec := newTestExercise(t, "dog", testConfig(model.ModeFeedback), "")
	ctx := context.Background()
	_, err := ex.handleKey(ctx, 'x')
	require.NoError(t, err)
	_, err = ex.handleKey(ctx, 'd')
	require.NoError(t, err)
	_, err = ex.handleKey(ctx, 'x')
	require.NoError(t, err)

	for k := 0; k < 256; k++ {
		key := byte(k)
		if keyboard.IsLetter(key) || key == keyboard.KeyEscape {
			continue
		}
		done, err := ex.handleKey(ctx, key)
		require.NoError(t, err)
		require.False(t, done)
		require.Equal(t, "d", ex.Progress(), "key %d", k)
		require.Equal(t, 1, ex.Mistakes(), "key %d", k)
	}
	require.Equal(t, []string{"x", "d", "x"}, rec.async)
}

func TestProgressIsAlwaysPrefix(t *testing.T) {
	target := "lennox"
	ex, _ := newTestExercise(t, target, testConfig(model.ModeFeedback), "")
	ctx := context.Background()

	keys := "qlzeennnoqox"
	for _, k := range []byte(keys) {
		before := ex.Progress()
		done, err := ex.handleKey(ctx, k)
		require.NoError(t, err)
		after := ex.Progress()
		require.Equal(t, target[:len(after)], after)
		require.True(t, len(after) == len(before) || len(after) == len(before)+1)
		require.Equal(t, len(after) == len(target), done)
	}
	require.Equal(t, target, ex.Progress())
}

func TestEscapeQuitsMidWord(t *testing.T) {
	ex, rec := newTestExercise(t, "apple", testConfig(model.ModeFeedback), "ap"+string(keyboard.KeyEscape)+"ple")

	err := runWithTimeout(t, ex)
	require.ErrorIs(t, err, ErrQuit)
	require.Equal(t, "ap", ex.Progress())
	require.NotEqual(t, StateCompleted, ex.State())
	require.Equal(t, "ple", string(rec.keys))
	require.Empty(t, rec.spoken)
}

func TestWarmUpSpeaksWordBeforeFirstRender(t *testing.T) {
	cfg := testConfig(model.ModeFeedback)
	cfg.WarmUp = true
	cfg.WarmUpRepeats = 2
	ex, rec := newTestExercise(t, "mom", cfg, "mom")

	require.NoError(t, runWithTimeout(t, ex))
	require.Equal(t, []string{"say:mom", "say:mom", "render:"}, rec.events[:3])
}

func TestMinimalModeSpeaksMistypedKeys(t *testing.T) {
	cfg := testConfig(model.ModeMinimal)
	cfg.WarmUp = true
	ex, rec := newTestExercise(t, "dad", cfg, "dxxxxad")

	require.NoError(t, runWithTimeout(t, ex))
	require.Equal(t, "render:", rec.events[0], "minimal mode never warms up")
	require.Equal(t, []string{"x", "x", "x", "x", completionPhrases[0]}, rec.spoken)
	require.Empty(t, rec.async)
	require.Equal(t, 0, ex.Mistakes())
}

func TestCompletionOrdering(t *testing.T) {
	ex, rec := newTestExercise(t, "dad", testConfig(model.ModeFeedback), "dad")

	require.NoError(t, runWithTimeout(t, ex))
	n := len(rec.events)
	require.Equal(t, []string{"async:d", "render:dad", "say:" + completionPhrases[0]}, rec.events[n-3:])
}

func TestReadErrorPropagates(t *testing.T) {
	ex, _ := newTestExercise(t, "ruby", testConfig(model.ModeFeedback), "")
	ex.deps.Keys = failingKeys{err: fmt.Errorf("%w: boom", keyboard.ErrIO)}

	err := runWithTimeout(t, ex)
	require.ErrorIs(t, err, keyboard.ErrIO)
}

type failingKeys struct{ err error }

func (f failingKeys) ReadKey() (byte, error) { return 0, f.err }

type failingSpeaker struct{}

func (failingSpeaker) Speak(context.Context, string) error { return errors.New("no festival") }

func TestSpeechFailuresAreIgnored(t *testing.T) {
	cfg := testConfig(model.ModeFeedback)
	cfg.WarmUp = true
	ex, _ := newTestExercise(t, "mom", cfg, "mxxxxom")
	ex.deps.Speaker = failingSpeaker{}

	require.NoError(t, runWithTimeout(t, ex))
	require.Equal(t, StateCompleted, ex.State())
}

func TestPauseHonorsCancellation(t *testing.T) {
	cfg := testConfig(model.ModeFeedback)
	cfg.Pause = time.Hour
	ex, _ := newTestExercise(t, "cat", cfg, "cat")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	err := ex.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, "cat", ex.Progress())
	require.NotEqual(t, StateCompleted, ex.State())
}

func TestNewRejectsUntypeableWords(t *testing.T) {
	for _, word := range []string{"", "Apple", "co-op"} {
		_, err := New(word, Deps{}, testConfig(model.ModeFeedback))
		require.Error(t, err, word)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(model.ModeFeedback)
	cfg.MistakeThreshold = 0
	_, err := New("cat", Deps{}, cfg)
	require.Error(t, err)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "completed", StateCompleted.String())
	require.Equal(t, "state(9)", State(9).String())
}
