// Package trait converts a dog's structural traits into a weighted,
// L2-normalized vector. Ranges and importance weights are carried in an
// explicit [Config] value rather than shared mutable state.
package trait

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/mchmarny/pawpair/pkg/vector"
)

// Name identifies one of the fixed traits.
type Name string

const (
	Age         Name = "age"
	Weight      Name = "weight"
	Sex         Name = "sex"
	Neutered    Name = "neutered"
	Sociability Name = "sociability"
	Temperament Name = "temperament"

	// Dimension is the length of every trait vector.
	Dimension = 6
)

var (
	// Names lists the traits in canonical vector order.
	Names = []Name{Age, Weight, Sex, Neutered, Sociability, Temperament}

	ErrUnknownTrait = errors.New("unknown trait")
	ErrInvalidRange = errors.New("invalid trait range")
)

// Range is the declared valid interval of a raw trait value.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Record is the raw trait bundle of one dog. Sex is 0 for female and 1 for
// male, Neutered is 0 or 1, Sociability and Temperament are on a 1-10 scale.
type Record struct {
	Age         float64 `json:"age" yaml:"age"`
	Weight      float64 `json:"weight" yaml:"weight"`
	Sex         float64 `json:"sex" yaml:"sex"`
	Neutered    float64 `json:"neutered" yaml:"neutered"`
	Sociability float64 `json:"sociability" yaml:"sociability"`
	Temperament float64 `json:"temperament" yaml:"temperament"`
}

// Value returns the raw value of the named trait.
func (r Record) Value(n Name) (float64, bool) {
	switch n {
	case Age:
		return r.Age, true
	case Weight:
		return r.Weight, true
	case Sex:
		return r.Sex, true
	case Neutered:
		return r.Neutered, true
	case Sociability:
		return r.Sociability, true
	case Temperament:
		return r.Temperament, true
	default:
		return 0, false
	}
}

// DefaultRanges returns the declared range of each trait.
func DefaultRanges() map[Name]Range {
	return map[Name]Range{
		Age:         {Min: 0, Max: 20},
		Weight:      {Min: 1, Max: 200},
		Sex:         {Min: 0, Max: 1},
		Neutered:    {Min: 0, Max: 1},
		Sociability: {Min: 1, Max: 10},
		Temperament: {Min: 1, Max: 10},
	}
}

// DefaultWeights returns the importance weight of each trait.
func DefaultWeights() map[Name]float64 {
	return map[Name]float64{
		Age:         1.0,
		Weight:      0.8,
		Sex:         0.6,
		Neutered:    0.7,
		Sociability: 1.2,
		Temperament: 1.1,
	}
}

// Config holds the normalization ranges and importance weights used by Embed.
// Missing entries fall back to the defaults.
type Config struct {
	Ranges  map[Name]Range   `json:"ranges" yaml:"ranges"`
	Weights map[Name]float64 `json:"weights" yaml:"weights"`
}

// DefaultConfig returns a Config populated with the default ranges and weights.
func DefaultConfig() Config {
	return Config{
		Ranges:  DefaultRanges(),
		Weights: DefaultWeights(),
	}
}

// WithWeights returns a copy of c with the given weights merged over the
// existing ones. The receiver is not modified.
func (c Config) WithWeights(w map[Name]float64) (Config, error) {
	out := Config{
		Ranges:  make(map[Name]Range, Dimension),
		Weights: make(map[Name]float64, Dimension),
	}
	for _, n := range Names {
		out.Ranges[n] = c.rangeOf(n)
		out.Weights[n] = c.weightOf(n)
	}
	for n, v := range w {
		if !isKnown(n) {
			return Config{}, fmt.Errorf("%w: %s", ErrUnknownTrait, n)
		}
		out.Weights[n] = v
	}
	return out, nil
}

// Validate checks that every configured trait is known, every range is
// non-degenerate and every weight is a finite non-negative number.
func (c Config) Validate() error {
	for n, r := range c.Ranges {
		if !isKnown(n) {
			return fmt.Errorf("%w: %s", ErrUnknownTrait, n)
		}
		if r.Max == r.Min || math.IsNaN(r.Min) || math.IsNaN(r.Max) {
			return fmt.Errorf("%w: %s [%v, %v]", ErrInvalidRange, n, r.Min, r.Max)
		}
	}
	for n, w := range c.Weights {
		if !isKnown(n) {
			return fmt.Errorf("%w: %s", ErrUnknownTrait, n)
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("invalid weight for %s: %v", n, w)
		}
	}
	return nil
}

// Normalize maps value linearly from the trait's range onto [0, 1] using
// (value-min)/(max-min). Values outside the range are not clamped and map
// outside [0, 1].
func (c Config) Normalize(n Name, value float64) (float64, error) {
	if !isKnown(n) {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTrait, n)
	}
	r := c.rangeOf(n)
	if r.Max == r.Min {
		return 0, fmt.Errorf("%w: %s [%v, %v]", ErrInvalidRange, n, r.Min, r.Max)
	}
	return (value - r.Min) / (r.Max - r.Min), nil
}

// Embed normalizes and weights each trait in canonical order and returns the
// L2-normalized result. The vector is left all-zero when its norm is zero.
// Traits with a degenerate range contribute zero.
func (c Config) Embed(r Record) []float64 {
	raw := make([]float64, Dimension)
	for i, n := range Names {
		v, _ := r.Value(n)
		norm, err := c.Normalize(n, v)
		if err != nil {
			slog.Debug("trait skipped", "trait", n, "error", err)
			continue
		}
		raw[i] = norm * c.weightOf(n)
	}

	out := vector.Unit(raw)
	slog.Debug("trait embedding", "raw", raw, "norm", vector.Norm(raw))
	return out
}

// Embed embeds r with the default configuration.
func Embed(r Record) []float64 {
	return DefaultConfig().Embed(r)
}

func (c Config) rangeOf(n Name) Range {
	if r, ok := c.Ranges[n]; ok {
		return r
	}
	return DefaultRanges()[n]
}

func (c Config) weightOf(n Name) float64 {
	if w, ok := c.Weights[n]; ok {
		return w
	}
	return DefaultWeights()[n]
}

func isKnown(n Name) bool {
	for _, k := range Names {
		if k == n {
			return true
		}
	}
	return false
}
