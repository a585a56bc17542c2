package optimizer

import (
	"github.com/matzehuels/pathorder/pkg/errors"
)

// Strategy selects how bucket results are post-processed.
type Strategy string

const (
	// StrategyGreedy emits the first-pass walk as is.
	StrategyGreedy Strategy = "greedy"
	// StrategyStitch re-orders each bucket's runs with [FastGraph.Stitch]
	// while doing so keeps reducing unjoined travel.
	StrategyStitch Strategy = "stitch"
)

// ValidStrategies is the set of supported strategies.
var ValidStrategies = map[Strategy]bool{
	StrategyGreedy: true,
	StrategyStitch: true,
}

const (
	DefaultCoarseness      = 0.05
	DefaultDirectionWeight = 0.5
	DefaultBucketMargin    = 20.0
	DefaultIterativeEffort = 10
)

// Config tunes the comparators and strategies. It is copied into each
// optimizer on construction and never modified afterwards.
type Config struct {
	// Coarseness is the distance below which two candidates count as equally
	// far, letting priority or direction decide.
	Coarseness float64 `toml:"coarseness" json:"coarseness"`

	// DirectionWeight scales the penalty for turning away from the previous
	// travel direction when distances tie.
	DirectionWeight float64 `toml:"direction_weight" json:"direction_weight"`

	// BucketMargin offsets the point-location ray target beyond the lower
	// left corner of the boundary bounding box.
	BucketMargin float64 `toml:"bucket_margin" json:"bucket_margin"`

	Strategy Strategy `toml:"strategy" json:"strategy"`

	// IterativeEffort caps the number of stitch passes per bucket.
	IterativeEffort int `toml:"iterative_effort" json:"iterative_effort"`

	// LinkPaths merges consecutive outputs of the simple optimizer when the
	// join between them crosses no boundary.
	LinkPaths bool `toml:"link_paths" json:"link_paths"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		Coarseness:      DefaultCoarseness,
		DirectionWeight: DefaultDirectionWeight,
		BucketMargin:    DefaultBucketMargin,
		Strategy:        StrategyGreedy,
		IterativeEffort: DefaultIterativeEffort,
	}
}

// SetDefaults fills zero-valued fields with defaults. Zero is a meaningful
// Coarseness and DirectionWeight, so only Strategy, BucketMargin and
// IterativeEffort are filled.
func (c *Config) SetDefaults() {
	if c.Strategy == "" {
		c.Strategy = StrategyGreedy
	}
	if c.BucketMargin == 0 {
		c.BucketMargin = DefaultBucketMargin
	}
	if c.IterativeEffort == 0 {
		c.IterativeEffort = DefaultIterativeEffort
	}
}

// Validate checks that every field is usable.
func (c Config) Validate() error {
	if err := errors.ValidateNonNegative("coarseness", c.Coarseness); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("direction_weight", c.DirectionWeight); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("bucket_margin", c.BucketMargin); err != nil {
		return err
	}
	if c.BucketMargin == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "bucket_margin must be positive")
	}
	if !ValidStrategies[c.Strategy] {
		return errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %q (use greedy or stitch)", c.Strategy)
	}
	if c.IterativeEffort < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "iterative_effort must be at least 1, got %d", c.IterativeEffort)
	}
	return nil
}
