package demos

import (
	"fmt"
	"math/rand"
)

// AgeDistr is a mutable single-year age distribution. It is the "sample
// without replacement from a shrinking population" structure: generation
// stages deplete it in place as individuals are allocated, so later draws
// reflect the reduced pool. Exactly one stage owns it at a time.
type AgeDistr struct {
	w []float64 // weight per single year of age, index 0..MaxAge
}

// NewAgeDistr builds a distribution from per-age weights. Weights need not
// sum to 1; sampling is proportional to weight.
func NewAgeDistr(weights []float64) *AgeDistr {
	w := make([]float64, MaxAge+1)
	copy(w, weights)
	return &AgeDistr{w: w}
}

// NewAgeDistrFromCounts builds a distribution proportional to integer counts
// per age, e.g. a population count table reduced by already-placed residents.
func NewAgeDistrFromCounts(counts map[int]int) *AgeDistr {
	w := make([]float64, MaxAge+1)
	for a, c := range counts {
		if a >= 0 && a <= MaxAge && c > 0 {
			w[a] = float64(c)
		}
	}
	return &AgeDistr{w: w}
}

// Clone returns an independent copy, for stages that must not deplete the
// caller's distribution.
func (d *AgeDistr) Clone() *AgeDistr {
	return NewAgeDistr(d.w)
}

// Weight returns the remaining mass at a single year of age.
func (d *AgeDistr) Weight(age int) float64 {
	if age < 0 || age > MaxAge {
		return 0
	}
	return d.w[age]
}

// Total returns the remaining mass over all ages.
func (d *AgeDistr) Total() float64 {
	var t float64
	for _, v := range d.w {
		t += v
	}
	return t
}

// Normalize rescales the weights to sum to 1. Stages that deplete fixed
// probability mass per allocated individual need a normalized distribution.
func (d *AgeDistr) Normalize() {
	t := d.Total()
	if t <= 0 {
		return
	}
	for i := range d.w {
		d.w[i] /= t
	}
}

// Deplete removes mass at one age, clamping at zero. Used after an
// individual of that age has been allocated.
func (d *AgeDistr) Deplete(age int, mass float64) {
	if age < 0 || age > MaxAge {
		return
	}
	d.w[age] -= mass
	if d.w[age] < 0 {
		d.w[age] = 0
	}
}

// Sample draws one age proportional to remaining weight over the full range.
func (d *AgeDistr) Sample(rng *rand.Rand) (int, error) {
	return d.SampleRange(rng, 0, MaxAge)
}

// SampleRange draws one age in [lo, hi] proportional to remaining weight.
// Returns ErrDepletedDistribution when the range holds no mass.
func (d *AgeDistr) SampleRange(rng *rand.Rand, lo, hi int) (int, error) {
	if lo < 0 {
		lo = 0
	}
	if hi > MaxAge {
		hi = MaxAge
	}
	var total float64
	for a := lo; a <= hi; a++ {
		total += d.w[a]
	}
	if total <= 0 {
		return 0, fmt.Errorf("ages %d-%d: %w", lo, hi, ErrDepletedDistribution)
	}
	r := rng.Float64() * total
	for a := lo; a <= hi; a++ {
		r -= d.w[a]
		if r < 0 {
			return a, nil
		}
	}
	return hi, nil
}
