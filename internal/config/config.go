package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pandaypr/ReinforcementLearning/gridworld"
	"github.com/pandaypr/ReinforcementLearning/mdp"
)

// EnvConfigPath names the variable consulted when no config path is given.
const EnvConfigPath = "POLICYITERATION_CONFIG"

// Config holds the grid and solver parameters.
type Config struct {
	Rows          int           `yaml:"rows"`
	Cols          int           `yaml:"cols"`
	MagicSquares  map[int]int   `yaml:"magic_squares"`
	Terminals     []int         `yaml:"terminals,omitempty"`
	Discount      float64       `yaml:"discount"`
	Threshold     float64       `yaml:"threshold"`
	MaxSweeps     int           `yaml:"max_sweeps,omitempty"`
	MaxIterations int           `yaml:"max_iterations,omitempty"`
	Timeout       time.Duration `yaml:"timeout,omitempty"`
}

// Default returns the classic 9x9 board with two magic squares.
func Default() Config {
	return Config{
		Rows:          9,
		Cols:          9,
		MagicSquares:  map[int]int{18: 54, 63: 14},
		Discount:      mdp.DefaultDiscount,
		Threshold:     mdp.DefaultThreshold,
		MaxSweeps:     mdp.DefaultMaxSweeps,
		MaxIterations: mdp.DefaultMaxIterations,
	}
}

// LoadConfig reads path, or the file named by POLICYITERATION_CONFIG when
// path is empty. With neither set it returns Default().
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Load overlays the YAML file at path on Default() and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document over Default(). The default magic squares
// only survive when the document omits magic_squares and keeps the 9x9 board.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	cfg.MagicSquares = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	var probe struct {
		MagicSquares *map[int]int `yaml:"magic_squares"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	def := Default()
	if probe.MagicSquares == nil && cfg.Rows == def.Rows && cfg.Cols == def.Cols {
		cfg.MagicSquares = def.MagicSquares
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.GridWorld().Check(); err != nil {
		return err
	}
	return c.Options().Validate()
}

func (c Config) GridWorld() gridworld.GridWorld {
	return gridworld.GridWorld{
		Rows:         c.Rows,
		Cols:         c.Cols,
		MagicSquares: c.MagicSquares,
		Terminals:    c.Terminals,
	}
}

func (c Config) Options() mdp.Options {
	return mdp.Options{
		Discount:      c.Discount,
		Threshold:     c.Threshold,
		MaxSweeps:     c.MaxSweeps,
		MaxIterations: c.MaxIterations,
		Timeout:       c.Timeout,
	}
}

func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
