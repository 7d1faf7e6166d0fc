package demos

import (
	"fmt"
	"math/rand"
)

// SampleIndex draws one index from a row of non-negative weights,
// proportional to weight. Returns ErrDepletedDistribution when the row
// holds no mass.
func SampleIndex(rng *rand.Rand, weights []float64) (int, error) {
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0, fmt.Errorf("weight row: %w", ErrDepletedDistribution)
	}
	r := rng.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		r -= w
		if r < 0 {
			return i, nil
		}
	}
	return len(weights) - 1, nil
}

// ResampleAge redraws an age for an individual whose first draw is suspected
// of small-sample bias. The redraw is weighted by the current distribution
// over the whole support, so it always lands on an age with remaining mass.
// When the distribution holds no mass at all the previous age is returned
// alongside ErrDepletedDistribution.
func ResampleAge(d *AgeDistr, rng *rand.Rand, prev int) (int, error) {
	a, err := d.Sample(rng)
	if err != nil {
		return prev, err
	}
	return a, nil
}
