// Package sampling provides the statistical primitives behind agent
// synthesis: truncated normal draws, binary sex draws and cumulative
// ("tower") categorical draws. Every draw goes through an explicit Sampler
// carrying its own random source, so reproducibility is a matter of seeding
// the sampler rather than a process-wide RNG.
package sampling

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/crowd-dynamics/crowdsynth/internal/monitoring"
	"github.com/crowd-dynamics/crowdsynth/internal/schema"
)

// Sentinel errors for sampling failures. Callers should match with errors.Is.
var (
	// ErrInvalidDistribution flags unusable distribution parameters:
	// non-positive spread, inverted bounds, or a probability outside [0,1].
	ErrInvalidDistribution = errors.New("invalid distribution parameters")

	// ErrProportionMismatch flags categorical proportions that do not sum
	// to exactly 1. Callers own normalisation; this is never repaired here.
	ErrProportionMismatch = errors.New("proportions do not sum to 1")
)

// Sampler draws random values from a dedicated source. A Sampler is not safe
// for concurrent use; give each goroutine its own, or serialise calls.
type Sampler struct {
	src rand.Source
}

// New returns a Sampler drawing from src. A nil src falls back to the
// global source used by gonum, which forfeits reproducibility.
func New(src rand.Source) *Sampler {
	return &Sampler{src: src}
}

// NewSeeded returns a Sampler with its own deterministic source.
func NewSeeded(seed uint64) *Sampler {
	return &Sampler{src: rand.NewSource(seed)}
}

// TruncNormal draws from a normal distribution with the given mean and
// standard deviation, truncated to [min, max]. The draw uses inverse-CDF
// sampling: a uniform value between CDF(min) and CDF(max) is mapped back
// through the normal quantile function, so every output lies within the
// bounds for any valid inputs.
func (s *Sampler) TruncNormal(mean, stdDev, min, max float64) (float64, error) {
	if stdDev <= 0 {
		return 0, fmt.Errorf("%w: std_dev %g must be positive", ErrInvalidDistribution, stdDev)
	}
	if min >= max {
		return 0, fmt.Errorf("%w: min %g must be less than max %g", ErrInvalidDistribution, min, max)
	}

	unit := distuv.Normal{Mu: 0, Sigma: 1}
	lo := unit.CDF((min - mean) / stdDev)
	hi := unit.CDF((max - mean) / stdDev)

	u := distuv.Uniform{Min: lo, Max: hi, Src: s.src}.Rand()
	x := mean + stdDev*unit.Quantile(u)

	// Quantile can touch ±Inf when the truncation window sits deep in a
	// tail; clamping keeps the inclusive-bounds guarantee airtight.
	return math.Max(min, math.Min(max, x)), nil
}

// Sex returns Male with probability maleProportion, Female otherwise.
func (s *Sampler) Sex(maleProportion float64) (schema.Sex, error) {
	if maleProportion < 0 || maleProportion > 1 {
		return "", fmt.Errorf("%w: male proportion %g outside [0,1]", ErrInvalidDistribution, maleProportion)
	}
	b := distuv.Bernoulli{P: maleProportion, Src: s.src}
	if b.Rand() == 1 {
		return schema.Male, nil
	}
	return schema.Female, nil
}

// WeightedOption is one (tag, proportion) entry for tower sampling. Order is
// significant: proportions accumulate in the order given.
type WeightedOption struct {
	Tag        string
	Proportion float64
}

// Tower draws one tag by cumulative-proportion (tower) sampling: a single
// uniform value in [0,1) is compared against the running sum of proportions,
// and the first tag whose cumulative sum reaches it wins (boundary
// inclusive). Proportions must sum to exactly 1; anything else is a contract
// violation on the caller's side and fails with ErrProportionMismatch.
func (s *Sampler) Tower(options []WeightedOption) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("%w: no options", ErrProportionMismatch)
	}
	sum := 0.0
	for _, opt := range options {
		sum += opt.Proportion
	}
	if sum != 1.0 {
		return "", fmt.Errorf("%w: got %g", ErrProportionMismatch, sum)
	}

	u := distuv.Uniform{Min: 0, Max: 1, Src: s.src}.Rand()
	if tag, ok := towerPick(u, options); ok {
		return tag, nil
	}

	// Reachable only through floating-point drift in the cumulative sum.
	// Falling back to the first tag is an edge case, not a feature, so it
	// stays loud in the logs.
	monitoring.Logf("tower sampling: cumulative sum exhausted at u=%v, falling back to %q", u, options[0].Tag)
	return options[0].Tag, nil
}

// towerPick walks the cumulative proportions and returns the first tag whose
// running sum is >= u. ok is false when rounding left no tag selected.
func towerPick(u float64, options []WeightedOption) (string, bool) {
	cumulative := 0.0
	for _, opt := range options {
		cumulative += opt.Proportion
		if u <= cumulative {
			return opt.Tag, true
		}
	}
	return "", false
}
