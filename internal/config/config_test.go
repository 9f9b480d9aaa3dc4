package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pandaypr/ReinforcementLearning/mdp"
)

func TestDefaultMatchesClassicBoard(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Rows != 9 || cfg.Cols != 9 || cfg.MagicSquares[18] != 54 || cfg.MagicSquares[63] != 14 {
		t.Fatalf("unexpected default board: %+v", cfg)
	}
	if cfg.Discount != 1.0 || cfg.Threshold != 1e-6 {
		t.Fatalf("unexpected default hyperparameters: %+v", cfg)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte("discount: 0.9\ntimeout: 30s\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Discount != 0.9 || cfg.Threshold != 1e-6 {
		t.Fatalf("unexpected hyperparameters: %+v", cfg)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %s", cfg.Timeout)
	}
	if len(cfg.MagicSquares) != 2 {
		t.Fatalf("expected default magic squares on the default board, got %v", cfg.MagicSquares)
	}
}

func TestParseCustomBoard(t *testing.T) {
	doc := `
rows: 4
cols: 5
magic_squares:
  3: 12
terminals: [0, 19]
threshold: 1.0e-4
max_sweeps: 500
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Rows != 4 || cfg.Cols != 5 {
		t.Fatalf("unexpected dimensions: %dx%d", cfg.Rows, cfg.Cols)
	}
	if len(cfg.MagicSquares) != 1 || cfg.MagicSquares[3] != 12 {
		t.Fatalf("magic squares must replace the defaults, got %v", cfg.MagicSquares)
	}
	grid := cfg.GridWorld()
	if len(grid.TerminalStates()) != 2 {
		t.Fatalf("unexpected terminals: %v", grid.TerminalStates())
	}
	opts := cfg.Options()
	if opts.Threshold != 1e-4 || opts.MaxSweeps != 500 || opts.MaxIterations != mdp.DefaultMaxIterations {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestParseResizedBoardDropsDefaultMagicSquares(t *testing.T) {
	cfg, err := Parse([]byte("rows: 3\ncols: 3\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cfg.MagicSquares) != 0 {
		t.Fatalf("expected no magic squares, got %v", cfg.MagicSquares)
	}
}

func TestParseRejectsInvalidConfig(t *testing.T) {
	for name, doc := range map[string]string{
		"magic target outside": "rows: 3\ncols: 3\nmagic_squares: {1: 9}\n",
		"zero rows":            "rows: 0\n",
		"bad discount":         "discount: 2\n",
		"zero threshold":       "threshold: 0\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); !errors.Is(err, mdp.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}

	if _, err := Parse([]byte("rows: [")); err == nil {
		t.Fatal("expected yaml error")
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	if err := os.WriteFile(path, []byte("rows: 2\ncols: 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(EnvConfigPath, path)
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Rows != 2 || cfg.Cols != 2 {
		t.Fatalf("expected config from env path, got %+v", cfg)
	}

	t.Setenv(EnvConfigPath, "")
	cfg, err = LoadConfig("")
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	if cfg.Rows != 9 {
		t.Fatalf("expected default config, got %+v", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Timeout = time.Minute
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if back.Timeout != time.Minute || back.MagicSquares[63] != 14 || back.Rows != 9 {
		t.Fatalf("unexpected round trip: %+v", back)
	}
}
