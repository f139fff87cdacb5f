package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvBoardWidth   = "SNAKE_BOARD_WIDTH"
	EnvBoardHeight  = "SNAKE_BOARD_HEIGHT"
	EnvBoundary     = "SNAKE_BOUNDARY"
	EnvInitialDelay = "SNAKE_INITIAL_DELAY_MS"
	EnvLogLevel     = "SNAKE_LOG_LEVEL"
)

// LoadSnake loads the snake configuration. Files only need to set the keys
// they change; everything else keeps its default.
// Search order: customPath -> ~/.snake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
func LoadSnake(customPath string) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("snake.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultSnakeConfig()
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "snake.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultSnakeConfig()
	}

	if err := yaml.Unmarshal(defaultSnakeYAML, &cfg); err != nil {
		return DefaultSnakeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs", filename)
}

// LoadDotEnv loads KEY=value pairs from the given files (default ".env") into
// the process environment without overwriting variables that are already set.
// Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: cannot load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with SNAKE_* environment variables.
func ApplyEnv(cfg *SnakeConfig) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvBoardWidth, &cfg.Board.Width},
		{EnvBoardHeight, &cfg.Board.Height},
		{EnvInitialDelay, &cfg.Speed.InitialDelayMs},
	}
	for _, v := range ints {
		raw, ok := os.LookupEnv(v.key)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("config: %s=%q is not a number", v.key, raw)
		}
		*v.dst = n
	}

	if b, ok := os.LookupEnv(EnvBoundary); ok && b != "" {
		cfg.Boundary = b
	}
	return nil
}
