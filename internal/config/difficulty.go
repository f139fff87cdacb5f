package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means "leave the config alone".
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// ApplySnakePreset modifies the speed settings according to a difficulty preset.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.InitialDelayMs = 600
		cfg.Speed.DecrementMs = 10
		cfg.Speed.MinDelayMs = 120
		cfg.Speed.Ramp = true
	case DifficultyNormal:
		cfg.Speed.InitialDelayMs = 500
		cfg.Speed.DecrementMs = 20
		cfg.Speed.MinDelayMs = 60
		cfg.Speed.Ramp = true
	case DifficultyHard:
		cfg.Speed.InitialDelayMs = 250
		cfg.Speed.DecrementMs = 15
		cfg.Speed.MinDelayMs = 40
		cfg.Speed.Ramp = true
	case DifficultyFixed:
		cfg.Speed.Ramp = false
	}
}
