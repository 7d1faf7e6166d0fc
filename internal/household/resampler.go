package household

import (
	"math/rand"

	"github.com/talgya/synthnet/internal/demos"
)

// Resampler applies the per-age corrective coins to a sampled age. At each
// configured age the base resampling procedure is reapplied with that age's
// probability; the check runs against the current age after each step, so a
// redraw can cascade into a later check exactly as in the calibration it
// encodes.
type Resampler struct {
	order []int
	coins map[int]float64
}

// NewResampler builds a resampler from tuning constants.
func NewResampler(cfg TuningConfig) *Resampler {
	return &Resampler{order: cfg.ResampleOrder, coins: cfg.ResampleCoins}
}

// Resample returns a possibly different age for the candidate. The returned
// age always lies in the distribution's remaining support.
func (r *Resampler) Resample(d *demos.AgeDistr, rng *rand.Rand, age int) (int, error) {
	for _, k := range r.order {
		if age != k {
			continue
		}
		p := r.coins[k]
		if p <= 0 || rng.Float64() >= p {
			continue
		}
		next, err := demos.ResampleAge(d, rng, age)
		if err != nil {
			return age, err
		}
		age = next
	}
	return age, nil
}
