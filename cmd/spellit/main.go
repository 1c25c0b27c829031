// Package main provides the CLI entrypoint for spellit.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/spellit/internal/config"
	"github.com/verte-zerg/spellit/internal/exercise"
	"github.com/verte-zerg/spellit/internal/generator"
	"github.com/verte-zerg/spellit/internal/keyboard"
	"github.com/verte-zerg/spellit/internal/logging"
	"github.com/verte-zerg/spellit/internal/model"
	"github.com/verte-zerg/spellit/internal/session"
	"github.com/verte-zerg/spellit/internal/speech"
	"github.com/verte-zerg/spellit/internal/tui"
	"github.com/verte-zerg/spellit/internal/wordlist"
)

const defaultLogLevel = "info"

var (
	playMode          string
	playWarmUp        bool
	playWarmUpRepeats int
	playPause         time.Duration
	playThreshold     int
	playSpeechCommand string
	playMute          bool
	playLogLevel      string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := model.DefaultConfig()
	rootCmd := &cobra.Command{
		Use:           "spellit",
		Short:         "Spoken typing practice, one word at a time",
		Long:          "Type the word shown on screen. Every key is read aloud; press Esc to quit.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playMode, "mode", string(defaults.Mode), "exercise mode: feedback or minimal")
	rootCmd.Flags().BoolVar(&playWarmUp, "warmup", defaults.WarmUp, "speak each word before typing starts (feedback mode)")
	rootCmd.Flags().IntVar(&playWarmUpRepeats, "warmup-repeats", defaults.WarmUpRepeats, "how many times the word is spoken during warm-up")
	rootCmd.Flags().DurationVar(&playPause, "pause", defaults.Pause, "pause before spoken feedback")
	rootCmd.Flags().IntVar(&playThreshold, "mistake-threshold", defaults.MistakeThreshold, "consecutive mistakes before a consolation phrase")
	rootCmd.Flags().StringVar(&playSpeechCommand, "speech-command", "", "override the speech binary (say on macOS, festival on Linux)")
	rootCmd.Flags().BoolVar(&playMute, "mute", false, "disable speech")
	rootCmd.Flags().StringVar(&playLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newWordsCmd())

	return rootCmd
}

func resolvePlayConfig(cmd *cobra.Command) (model.Config, string, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, "", fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &playMode, fileCfg.Game.Mode)
	applyBoolConfig(cmd, "warmup", &playWarmUp, fileCfg.Game.WarmUp)
	applyIntConfig(cmd, "warmup-repeats", &playWarmUpRepeats, fileCfg.Game.WarmUpRepeats)
	applyMillisConfig(cmd, "pause", &playPause, fileCfg.Game.PauseMs)
	applyIntConfig(cmd, "mistake-threshold", &playThreshold, fileCfg.Game.MistakeThreshold)
	applyStringConfig(cmd, "speech-command", &playSpeechCommand, fileCfg.Speech.Command)
	applyStringConfig(cmd, "log-level", &playLogLevel, fileCfg.Log.Level)

	mode, err := model.ParseMode(playMode)
	if err != nil {
		return model.Config{}, "", fmt.Errorf("--mode: %w", err)
	}
	cfg := model.Config{
		Mode:             mode,
		WarmUp:           playWarmUp,
		WarmUpRepeats:    playWarmUpRepeats,
		Pause:            playPause,
		MistakeThreshold: playThreshold,
		SpeechCommand:    playSpeechCommand,
		Mute:             playMute,
	}
	if err := cfg.Validate(); err != nil {
		return model.Config{}, "", err
	}
	return cfg, playLogLevel, nil
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, logLevel, err := resolvePlayConfig(cmd)
	if err != nil {
		return err
	}

	logs, err := logging.New(config.DefaultLogPath(), logLevel)
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		logs = logging.Nop()
	}
	defer func() {
		if cerr := logs.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	speaker, err := newSpeaker(cfg)
	if err != nil {
		return err
	}

	words := wordlist.Words()
	deps := exercise.Deps{
		Keys:    keyboard.New(os.Stdin),
		Display: tui.NewDisplay(cmd.OutOrStdout()),
		Speaker: speaker,
		Picker:  generator.New(),
		Log:     logs.Logger,
	}
	s, err := session.New(words, deps, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logs.Logger.Info().Str("mode", string(cfg.Mode)).Int("words", len(words)).Msg("session started")
	err = s.Run(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, exercise.ErrQuit), errors.Is(err, context.Canceled):
		// In-flight background speech is abandoned on exit.
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
		return nil
	default:
		return fmt.Errorf("game aborted: %w", err)
	}
}

func newSpeaker(cfg model.Config) (speech.Speaker, error) {
	if cfg.Mute {
		return speech.Silent{}, nil
	}
	speaker, err := speech.Detect(runtime.GOOS, cfg.SpeechCommand)
	if err != nil {
		return nil, fmt.Errorf("failed to select speech backend: %w", err)
	}
	if _, err := exec.LookPath(speaker.Bin()); err != nil {
		logErrf("warning: %s not found, speech will be silent\n", speaker.Bin())
	}
	return speaker, nil
}

func newWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words",
		Short: "List the practice words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, word := range wordlist.Words() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), word); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			}
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeDefaultConfig creates the commented template unless a config already exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyMillisConfig(cmd *cobra.Command, name string, target *time.Duration, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = time.Duration(*value) * time.Millisecond
}

func defaultConfigTemplate() string {
	defaults := model.DefaultConfig()
	return fmt.Sprintf(`# spellit configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# mode = %q            # feedback or minimal
# warmup = %t              # Speak each word before typing starts (feedback mode)
# warmup-repeats = %d        # Times the word is spoken during warm-up
# pause-ms = %d           # Pause before spoken feedback
# mistake-threshold = %d     # Consecutive mistakes before a consolation phrase

[speech]
# command = "festival"     # Speech binary (say on macOS, festival on Linux)

[log]
# level = %q             # debug, info, warn or error
`,
		defaults.Mode,
		defaults.WarmUp,
		defaults.WarmUpRepeats,
		defaults.Pause.Milliseconds(),
		defaults.MistakeThreshold,
		defaultLogLevel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
