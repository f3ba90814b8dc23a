// Package layout computes the sibling distance of every internal tree node.
//
// The metric is a cheap proxy for how much horizontal room a subtree needs so
// that sibling subtrees do not overlap once drawn. It is computed bottom-up:
//
//	leaf:     0
//	internal: (max(left, right) + Base) * Scale, capped at Max if Max > 0
//
// With the defaults (Base 7, Scale 1.65) a node whose children are leaves gets
// 11.55, its parent 30.6075, and so on.
package layout

import (
	"fmt"

	"github.com/matzehuels/bstviz/pkg/bst"
)

const (
	// DefaultScale is the multiplicative distance factor.
	DefaultScale = 1.65
	// DefaultBase is the additive distance offset applied before scaling.
	DefaultBase = 7.0
)

// Config holds the distance knobs. The zero Max means uncapped.
type Config struct {
	Scale float64 `json:"scale" toml:"scale"`
	Base  float64 `json:"base" toml:"base"`
	Max   float64 `json:"max,omitempty" toml:"max"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{Scale: DefaultScale, Base: DefaultBase}
}

// Option modifies a Config.
type Option func(*Config)

// WithScale sets the distance factor.
func WithScale(s float64) Option { return func(c *Config) { c.Scale = s } }

// WithBase sets the additive offset.
func WithBase(b float64) Option { return func(c *Config) { c.Base = b } }

// WithMax caps the metric of every node at m. Zero disables the cap.
func WithMax(m float64) Option { return func(c *Config) { c.Max = m } }

// New returns DefaultConfig with opts applied.
func New(opts ...Option) Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// SetScale sets the distance factor.
func (c *Config) SetScale(s float64) { c.Scale = s }

// SetBase sets the additive offset.
func (c *Config) SetBase(b float64) { c.Base = b }

// SetMax sets the cap; zero disables it.
func (c *Config) SetMax(m float64) { c.Max = m }

// Capped reports whether a maximum distance is configured.
func (c Config) Capped() bool { return c.Max > 0 }

// Validate rejects a non-positive scale and negative base or max.
func (c Config) Validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("distance scale must be positive, got %g", c.Scale)
	}
	if c.Base < 0 {
		return fmt.Errorf("distance base must not be negative, got %g", c.Base)
	}
	if c.Max < 0 {
		return fmt.Errorf("distance max must not be negative, got %g", c.Max)
	}
	return nil
}

// Compute writes the sibling distance into Metric for every node of the
// subtree rooted at n and returns the metric of n. A nil node contributes 0.
func Compute(n *bst.Node, cfg Config) float64 {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		n.Metric = 0
		return 0
	}
	left := Compute(n.Left(), cfg)
	right := Compute(n.Right(), cfg)

	m := (max(left, right) + cfg.Base) * cfg.Scale
	if cfg.Capped() && m > cfg.Max {
		m = cfg.Max
	}
	n.Metric = m
	return m
}

// Apply runs Compute over the whole tree and returns the root metric.
func Apply(t *bst.Tree, cfg Config) float64 {
	return Compute(t.Root(), cfg)
}
