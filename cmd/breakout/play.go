package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/game"
	"github.com/vovakirdan/tui-breakout/internal/metrics"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagMute        bool
	flagPlayMetrics string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a breakout session in the current terminal.

Controls:
  Space/Enter  - Launch the ball, play again after game over
  Left/Right   - Steer the paddle (also A/D)
  Mouse drag   - Grab the paddle and drag it
  Ctrl+S       - Save a screenshot
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower ball, wider paddle, fewer blocks
  normal - Defaults from the config file
  hard   - Faster ball, narrower paddle, more blocks

Examples:
  breakout play
  breakout play --difficulty easy
  breakout play --seed 42 --mute
  breakout play --config ./my-breakout.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().StringVar(&flagPlayMetrics, "metrics", "", "Expose Prometheus metrics on this address (e.g. :9090)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closer, err := openLogger("breakout")
	if err != nil {
		return err
	}
	defer closer.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	var recorder tui.Recorder
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("session history disabled", "error", err)
	} else {
		defer store.Close()
		recorder = store
	}

	sound := audio.New(cfg.Audio.Enabled && !flagMute, audio.Options{
		SampleRate: cfg.Audio.SampleRate,
		Volume:     cfg.Audio.Volume,
		Logger:     logger,
	})
	defer sound.Close()

	var observer breakout.Observer
	if flagPlayMetrics != "" {
		m := metrics.New("breakout")
		observer = m
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if serveErr := m.Serve(ctx, flagPlayMetrics, logger); serveErr != nil {
				logger.Error("metrics server error", "error", serveErr)
			}
		}()
	}

	scene := game.New(game.Options{
		Config:   &cfg,
		Sound:    sound,
		Observer: observer,
		Logger:   logger,
	})

	if err := tui.Run(scene, recorder, runtime, logger); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	return nil
}
