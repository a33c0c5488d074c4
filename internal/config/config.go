// Package config provides YAML-based configuration loading and difficulty
// presets for the breakout game.
package config

import (
	"errors"
	"fmt"
)

// BreakoutConfig contains all tunables for a breakout session.
type BreakoutConfig struct {
	Ball     BallConfig     `yaml:"ball"`
	Paddle   PaddleConfig   `yaml:"paddle"`
	Blocks   BlocksConfig   `yaml:"blocks"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Audio    AudioConfig    `yaml:"audio"`
}

// BallConfig defines launch parameters.
type BallConfig struct {
	Speed          float64 `yaml:"speed"`            // cells per second
	LaunchMinAngle float64 `yaml:"launch_min_angle"` // degrees from +x, pointing up
	LaunchMaxAngle float64 `yaml:"launch_max_angle"`
	MaxDamping     float64 `yaml:"max_damping"` // applied when the game ends
}

// PaddleConfig defines the paddle.
type PaddleConfig struct {
	Width     int     `yaml:"width"`
	SteerStep float64 `yaml:"steer_step"` // cells per key press
}

// BlocksConfig defines the block row.
type BlocksConfig struct {
	Count  int     `yaml:"count"`
	Width  int     `yaml:"width"`
	Row    float64 `yaml:"row"` // height from the bottom as a fraction of the field
	Points int     `yaml:"points"`
}

// GameplayConfig holds presentation timings.
type GameplayConfig struct {
	MessageReveal float64 `yaml:"message_reveal"` // seconds for the message to scale in or out
	BurstDuration float64 `yaml:"burst_duration"` // seconds a block burst stays on screen
}

// AudioConfig controls sound output.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // linear, 1 = unchanged
	SampleRate int     `yaml:"sample_rate"`
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects values no session can run with.
func (c BreakoutConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Ball.Speed > 0, "ball.speed must be positive, got %v", c.Ball.Speed)
	check(c.Ball.LaunchMinAngle > 0 && c.Ball.LaunchMinAngle < 180,
		"ball.launch_min_angle must be in (0, 180), got %v", c.Ball.LaunchMinAngle)
	check(c.Ball.LaunchMaxAngle > 0 && c.Ball.LaunchMaxAngle < 180,
		"ball.launch_max_angle must be in (0, 180), got %v", c.Ball.LaunchMaxAngle)
	check(c.Ball.LaunchMinAngle <= c.Ball.LaunchMaxAngle,
		"ball.launch_min_angle %v exceeds launch_max_angle %v", c.Ball.LaunchMinAngle, c.Ball.LaunchMaxAngle)
	check(c.Ball.MaxDamping >= 0 && c.Ball.MaxDamping <= 1,
		"ball.max_damping must be in [0, 1], got %v", c.Ball.MaxDamping)
	check(c.Paddle.Width > 0, "paddle.width must be positive, got %d", c.Paddle.Width)
	check(c.Paddle.SteerStep > 0, "paddle.steer_step must be positive, got %v", c.Paddle.SteerStep)
	check(c.Blocks.Count > 0, "blocks.count must be positive, got %d", c.Blocks.Count)
	check(c.Blocks.Width > 0, "blocks.width must be positive, got %d", c.Blocks.Width)
	check(c.Blocks.Row > 0 && c.Blocks.Row < 1, "blocks.row must be in (0, 1), got %v", c.Blocks.Row)
	check(c.Blocks.Points >= 0, "blocks.points must not be negative, got %d", c.Blocks.Points)
	check(c.Gameplay.MessageReveal >= 0, "gameplay.message_reveal must not be negative")
	check(c.Gameplay.BurstDuration >= 0, "gameplay.burst_duration must not be negative")
	check(c.Audio.Volume >= 0, "audio.volume must not be negative, got %v", c.Audio.Volume)
	check(c.Audio.SampleRate >= 0, "audio.sample_rate must not be negative, got %d", c.Audio.SampleRate)

	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI value to a preset. An empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}
