package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the hardcoded configuration, used when even
// the embedded YAML cannot be parsed.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Ball: BallConfig{
			Speed:          20,
			LaunchMinAngle: 30,
			LaunchMaxAngle: 150,
			MaxDamping:     1,
		},
		Paddle: PaddleConfig{
			Width:     10,
			SteerStep: 2,
		},
		Blocks: BlocksConfig{
			Count:  8,
			Width:  6,
			Row:    0.8,
			Points: 10,
		},
		Gameplay: GameplayConfig{
			MessageReveal: 0.25,
			BurstDuration: 1.0,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 44100,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
