package mdp

import (
	"fmt"
	"io"
	"log"
	"math"
	"time"
)

const (
	DefaultDiscount      = 1.0
	DefaultThreshold     = 1e-6
	DefaultMaxSweeps     = 100000
	DefaultMaxIterations = 1000
)

type Options struct {
	Discount  float64
	Threshold float64

	// MaxSweeps bounds a single policy evaluation. Zero selects DefaultMaxSweeps.
	MaxSweeps int
	// MaxIterations bounds the evaluate/improve loop. Zero selects DefaultMaxIterations.
	MaxIterations int
	// Timeout bounds a whole Solve call when positive.
	Timeout time.Duration

	Logger *log.Logger
}

func DefaultOptions() Options {
	return Options{
		Discount:      DefaultDiscount,
		Threshold:     DefaultThreshold,
		MaxSweeps:     DefaultMaxSweeps,
		MaxIterations: DefaultMaxIterations,
	}
}

func (o Options) Validate() error {
	if math.IsNaN(o.Discount) || o.Discount < 0 || o.Discount > 1 {
		return fmt.Errorf("discount %g not in [0,1]: %w", o.Discount, ErrConfiguration)
	}
	if !(o.Threshold > 0) {
		return fmt.Errorf("threshold %g must be positive: %w", o.Threshold, ErrConfiguration)
	}
	if o.MaxSweeps < 0 {
		return fmt.Errorf("max sweeps %d is negative: %w", o.MaxSweeps, ErrConfiguration)
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("max iterations %d is negative: %w", o.MaxIterations, ErrConfiguration)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("timeout %s is negative: %w", o.Timeout, ErrConfiguration)
	}
	return nil
}

func (o Options) withDefaults() (Options, error) {
	if err := o.Validate(); err != nil {
		return o, err
	}
	if o.MaxSweeps == 0 {
		o.MaxSweeps = DefaultMaxSweeps
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}
	return o, nil
}
